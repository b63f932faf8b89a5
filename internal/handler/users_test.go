package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pairloom/profiles/internal/config"
	"github.com/pairloom/profiles/internal/database"
	"github.com/pairloom/profiles/internal/handler"
	"github.com/pairloom/profiles/internal/middleware"
	"github.com/pairloom/profiles/internal/repository"
	"github.com/pairloom/profiles/internal/router"
	"github.com/pairloom/profiles/internal/server"
	"github.com/pairloom/profiles/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI wires the full application over a temp sqlite file and
// returns the router.
func newTestAPI(t *testing.T) *echo.Echo {
	t.Helper()

	e, _ := newTestApp(t)
	return e
}

// newTestApp is newTestAPI but also exposes the server, for tests that
// need to reach past the HTTP surface (e.g. to break the database).
func newTestApp(t *testing.T) (*echo.Echo, *server.Server) {
	t.Helper()

	cfg := &config.Config{
		Primary: config.Primary{Env: "local"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			Path:            filepath.Join(t.TempDir(), "test.db"),
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 60,
			ConnMaxIdleTime: 30,
		},
	}
	log := zerolog.Nop()

	require.NoError(t, database.Migrate(context.Background(), &log, cfg))

	srv, err := server.New(cfg, &log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.DB.Close() })

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	middlewares := middleware.NewMiddlewares(srv)
	handlers := handler.NewHandlers(srv, services)

	return router.New(middlewares, handlers), srv
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const annBody = `{
	"user_id": 1,
	"name": "Ann",
	"age": 25,
	"location": "NYC",
	"gender": "F",
	"preferences": {},
	"video_clip": "a.mp4"
}`

func TestRoot(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Hello, World!"}`, rec.Body.String())
}

func TestCreateUser(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/users", annBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, annBody, rec.Body.String())
}

func TestCreateUser_Duplicate(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/users", annBody)
	require.Equal(t, http.StatusOK, rec.Code)

	// Same id again: 400 with the fixed message, original untouched.
	dup := strings.Replace(annBody, `"Ann"`, `"Impostor"`, 1)
	rec = doJSON(t, e, http.MethodPost, "/users", dup)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"User with this ID already exists"}`, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, annBody, rec.Body.String())
}

func TestCreateUser_MissingFieldIsRejected(t *testing.T) {
	e := newTestAPI(t)

	body := `{
		"user_id": 1,
		"age": 25,
		"location": "NYC",
		"gender": "F",
		"preferences": {},
		"video_clip": "a.mp4"
	}`
	rec := doJSON(t, e, http.MethodPost, "/users", body)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Detail string `json:"detail"`
		Errors []struct {
			Field string `json:"field"`
			Error string `json:"error"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Validation failed", resp.Detail)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "name", resp.Errors[0].Field)

	// Nothing was stored.
	rec = doJSON(t, e, http.MethodGet, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateUser_ZeroValuesAreValid(t *testing.T) {
	e := newTestAPI(t)

	// age 0 and empty strings are present, just zero; presence is what
	// the shape check enforces.
	body := `{
		"user_id": 7,
		"name": "",
		"age": 0,
		"location": "",
		"gender": "",
		"preferences": {"a": {"b": ["c", 1, true]}},
		"video_clip": ""
	}`
	rec := doJSON(t, e, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, body, rec.Body.String())
}

func TestGetUser_NotFound(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodGet, "/users/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, rec.Body.String())
}

func TestListUsers_Filters(t *testing.T) {
	e := newTestAPI(t)

	for i, age := range []int{20, 25, 30} {
		body := fmt.Sprintf(`{
			"user_id": %d, "name": "U%d", "age": %d, "location": "NYC",
			"gender": "F", "preferences": {}, "video_clip": "v.mp4"
		}`, i+1, i+1, age)
		rec := doJSON(t, e, http.MethodPost, "/users", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var users []map[string]any

	rec := doJSON(t, e, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 3)

	rec = doJSON(t, e, http.MethodGet, "/users?min_age=22&max_age=28", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, float64(25), users[0]["age"])

	// Inclusive bounds: age exactly min_age / max_age is in.
	rec = doJSON(t, e, http.MethodGet, "/users?min_age=20&max_age=30", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 3)

	// No matches is still a 200 with an empty array.
	rec = doJSON(t, e, http.MethodGet, "/users?location=Oslo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListUsers_NegativeBoundsFilter(t *testing.T) {
	e := newTestAPI(t)

	for _, u := range []struct {
		id  int
		age int
	}{{1, -5}, {2, 25}} {
		body := fmt.Sprintf(`{
			"user_id": %d, "name": "U%d", "age": %d, "location": "NYC",
			"gender": "F", "preferences": {}, "video_clip": "v.mp4"
		}`, u.id, u.id, u.age)
		rec := doJSON(t, e, http.MethodPost, "/users", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var users []map[string]any

	// A negative bound is an ordinary predicate, not an error.
	rec := doJSON(t, e, http.MethodGet, "/users?min_age=-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, float64(25), users[0]["age"])

	rec = doJSON(t, e, http.MethodGet, "/users?min_age=-10&max_age=-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, float64(-5), users[0]["age"])
}

func TestUpdateUser(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/users", annBody)
	require.Equal(t, http.StatusOK, rec.Code)

	replacement := `{
		"user_id": 1,
		"name": "Bea",
		"age": 31,
		"location": "LA",
		"gender": "X",
		"preferences": {"theme": "dark"},
		"video_clip": "b.mp4"
	}`
	rec = doJSON(t, e, http.MethodPut, "/users/1", replacement)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, replacement, rec.Body.String())

	// Read-back reflects every new field, none of the old values.
	rec = doJSON(t, e, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, replacement, rec.Body.String())
}

func TestUpdateUser_PathIDIsAuthoritative(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/users", annBody)
	require.Equal(t, http.StatusOK, rec.Code)

	// Body claims user_id 42; the path id wins and the key never moves.
	body := `{
		"user_id": 42,
		"name": "Bea",
		"age": 31,
		"location": "LA",
		"gender": "X",
		"preferences": {},
		"video_clip": "b.mp4"
	}`
	rec = doJSON(t, e, http.MethodPut, "/users/1", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, float64(1), updated["user_id"])
	assert.Equal(t, "Bea", updated["name"])

	rec = doJSON(t, e, http.MethodGet, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, float64(1), updated["user_id"])
	assert.Equal(t, "Bea", updated["name"])

	rec = doJSON(t, e, http.MethodGet, "/users/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUser_NotFound(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPut, "/users/999", annBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, rec.Body.String())
}

func TestDeleteUser(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodPost, "/users", annBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, e, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User 1 deleted successfully"}`, rec.Body.String())

	// Delete is final: the second attempt reports absence.
	rec = doJSON(t, e, http.MethodDelete, "/users/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Route not found"}`, rec.Body.String())
}

func TestNonNumericPathID(t *testing.T) {
	e := newTestAPI(t)

	rec := doJSON(t, e, http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
