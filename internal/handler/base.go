package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pairloom/profiles/internal/middleware"
	"github.com/pairloom/profiles/internal/server"
	"github.com/pairloom/profiles/internal/validation"
)

// Handler is the base type holding shared application dependencies,
// embedded by the concrete handlers.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler. Returning by value is fine: the
// struct only holds a pointer.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint function: it receives a bound and
// validated request payload and returns the response value or an error.
// Req must be a pointer type so echo's binder can populate it.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Handle wraps a typed endpoint function into an echo.HandlerFunc,
// centralizing the per-request pipeline:
//
//   - bind + validate the payload (422 on shape failure, before any
//     domain logic runs)
//   - structured request/handler timing logs
//   - JSON response with the given status on success
//
// Errors are returned to echo so the global error handler formats them.
func Handle[Req validation.Validatable, Res any](
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		logger := middleware.GetLogger(c).With().
			Str("operation", "handler").
			Str("route", c.Path()).
			Logger()

		req := newReq()
		if err := validation.BindAndValidate(c, req); err != nil {
			logger.Warn().
				Err(err).
				Dur("total_duration", time.Since(start)).
				Msg("request validation failed")
			return err
		}

		result, err := handler(c, req)
		if err != nil {
			logger.Debug().
				Err(err).
				Dur("total_duration", time.Since(start)).
				Msg("handler returned error")
			return err
		}

		logger.Debug().
			Dur("total_duration", time.Since(start)).
			Msg("request completed")

		return c.JSON(status, result)
	}
}
