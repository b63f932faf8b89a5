package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pairloom/profiles/internal/handler"
)

// registerUserRoutes maps the user record store onto its HTTP surface.
// One canonical registration per operation; the list endpoint is the
// filtered variant.
func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")

	users.GET("", handler.Handle(h.Users.List, http.StatusOK,
		func() *handler.ListUsersRequest { return &handler.ListUsersRequest{} }))
	users.POST("", handler.Handle(h.Users.Create, http.StatusOK,
		func() *handler.CreateUserRequest { return &handler.CreateUserRequest{} }))
	users.GET("/:user_id", handler.Handle(h.Users.Get, http.StatusOK,
		func() *handler.GetUserRequest { return &handler.GetUserRequest{} }))
	users.PUT("/:user_id", handler.Handle(h.Users.Update, http.StatusOK,
		func() *handler.UpdateUserRequest { return &handler.UpdateUserRequest{} }))
	users.DELETE("/:user_id", handler.Handle(h.Users.Delete, http.StatusOK,
		func() *handler.DeleteUserRequest { return &handler.DeleteUserRequest{} }))
}
