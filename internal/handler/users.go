package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/pairloom/profiles/internal/model"
	"github.com/pairloom/profiles/internal/server"
	"github.com/pairloom/profiles/internal/service"
	"github.com/pairloom/profiles/internal/validation"
)

// MessageResponse is the body for endpoints that confirm an action with
// a plain message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListUsersRequest carries the optional list predicates from the query
// string. Omitted parameters impose no constraint.
type ListUsersRequest struct {
	Location *string `query:"location"`
	MinAge   *int    `query:"min_age"`
	MaxAge   *int    `query:"max_age"`
	Gender   *string `query:"gender"`
}

func (r *ListUsersRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// GetUserRequest identifies a record by its path id.
type GetUserRequest struct {
	UserID int64 `param:"user_id"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// UserPayload is the full record shape required on create and replace.
// Fields are pointers so presence is checked rather than zero values:
// age 0 or an empty preferences document are valid, a missing field is
// not.
type UserPayload struct {
	UserID      *int64         `json:"user_id" validate:"required"`
	Name        *string        `json:"name" validate:"required"`
	Age         *int           `json:"age" validate:"required"`
	Location    *string        `json:"location" validate:"required"`
	Gender      *string        `json:"gender" validate:"required"`
	Preferences map[string]any `json:"preferences" validate:"required"`
	VideoClip   *string        `json:"video_clip" validate:"required"`
}

// toModel converts a validated payload into the domain entity.
func (p *UserPayload) toModel() model.User {
	return model.User{
		UserID:      *p.UserID,
		Name:        *p.Name,
		Age:         *p.Age,
		Location:    *p.Location,
		Gender:      *p.Gender,
		Preferences: p.Preferences,
		VideoClip:   *p.VideoClip,
	}
}

// CreateUserRequest is the POST /users body.
type CreateUserRequest struct {
	UserPayload
}

func (r *CreateUserRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// UpdateUserRequest is the PUT /users/{user_id} request: the id comes
// from the path and is authoritative; the body must carry the full
// record shape. The body's own user_id is required like every other
// field but is not honored as the key.
type UpdateUserRequest struct {
	PathUserID int64 `param:"user_id" json:"-"`
	UserPayload
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// DeleteUserRequest identifies the record to remove by its path id.
type DeleteUserRequest struct {
	UserID int64 `param:"user_id"`
}

func (r *DeleteUserRequest) Validate() error {
	return validation.Validator.Struct(r)
}

// UserHandler exposes the user record store over HTTP. It holds no
// per-request state.
type UserHandler struct {
	Handler
	services *service.Services
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(s *server.Server, services *service.Services) *UserHandler {
	return &UserHandler{
		Handler:  NewHandler(s),
		services: services,
	}
}

// List returns users matching the supplied filters. No matches is a 200
// with an empty array, never an error.
func (h *UserHandler) List(c echo.Context, req *ListUsersRequest) ([]model.User, error) {
	filter := model.UserFilter{
		Location: req.Location,
		MinAge:   req.MinAge,
		MaxAge:   req.MaxAge,
		Gender:   req.Gender,
	}
	return h.services.Users.List(c.Request().Context(), filter)
}

// Get returns a single user by id.
func (h *UserHandler) Get(c echo.Context, req *GetUserRequest) (*model.User, error) {
	return h.services.Users.Get(c.Request().Context(), req.UserID)
}

// Create inserts a new user and echoes the record as persisted.
func (h *UserHandler) Create(c echo.Context, req *CreateUserRequest) (*model.User, error) {
	return h.services.Users.Create(c.Request().Context(), req.toModel())
}

// Update fully replaces the user at the path id.
func (h *UserHandler) Update(c echo.Context, req *UpdateUserRequest) (*model.User, error) {
	return h.services.Users.Replace(c.Request().Context(), req.PathUserID, req.toModel())
}

// Delete removes the user at the path id and confirms with a message
// embedding the deleted id.
func (h *UserHandler) Delete(c echo.Context, req *DeleteUserRequest) (*MessageResponse, error) {
	msg, err := h.services.Users.Delete(c.Request().Context(), req.UserID)
	if err != nil {
		return nil, err
	}
	return &MessageResponse{Message: msg}, nil
}
