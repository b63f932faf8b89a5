package service

import (
	"github.com/pairloom/profiles/internal/repository"
	"github.com/pairloom/profiles/internal/server"
)

// Services is the container for all service instances.
type Services struct {
	Users *UserService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Users: NewUserService(s, repos),
	}
}
