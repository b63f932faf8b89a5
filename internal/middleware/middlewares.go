package middleware

import (
	"github.com/pairloom/profiles/internal/server"
)

// Middlewares is a container that groups all middleware components used
// by the HTTP server, built once at startup and reused during router
// setup.
type Middlewares struct {
	// Global holds the middleware applied to every route: CORS, request
	// logging, recovery, secure headers, and the global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip).
	ContextEnhancer *ContextEnhancer
}

// NewMiddlewares constructs all middleware components from the
// application container.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
	}
}
