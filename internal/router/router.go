// Package router initializes the HTTP router (echo).
//
// It registers the middleware stack and maps paths to their handlers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/pairloom/profiles/internal/handler"
	"github.com/pairloom/profiles/internal/middleware"
)

// New builds the echo instance: error handler, middleware chain, and all
// route groups.
func New(mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	e.Use(middleware.RequestID())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Global.CORS())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Global.Recover())
	e.Use(mw.Global.Secure())

	registerSystemRoutes(e, h)
	registerUserRoutes(e, h)

	return e
}
