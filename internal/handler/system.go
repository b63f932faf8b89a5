package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pairloom/profiles/internal/server"
)

// SystemHandler serves the root greeting endpoint.
type SystemHandler struct {
	Handler
}

// NewSystemHandler constructs a SystemHandler.
func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(s),
	}
}

// Root answers GET / with the canonical hello message.
func (h *SystemHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "Hello, World!"})
}
