package handler

import (
	"github.com/pairloom/profiles/internal/server"
	"github.com/pairloom/profiles/internal/service"
)

// Handlers is the container that groups all HTTP handlers so router
// setup passes one object around.
type Handlers struct {
	Users   *UserHandler
	System  *SystemHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Users:   NewUserHandler(s, services),
		System:  NewSystemHandler(s),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
