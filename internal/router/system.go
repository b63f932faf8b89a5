package router

import (
	"github.com/labstack/echo/v4"
	"github.com/pairloom/profiles/internal/handler"
)

// registerSystemRoutes registers the endpoints that are not part of the
// record store itself: the root greeting, health status, and API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.System.Root)

	// Health status endpoint for load balancers and monitors.
	r.GET("/status", h.Health.CheckHealth)

	// Docs UI plus the static assets it reads (openapi.json).
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.Static("/static", "static")
}
