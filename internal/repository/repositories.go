package repository

import (
	"github.com/pairloom/profiles/internal/server"
)

// Repositories is the container for all repository instances, wired once
// at startup and handed to the service layer.
type Repositories struct {
	Users *UserRepository
}

// NewRepositories constructs the repository container from the
// application container.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users: NewUserRepository(s),
	}
}
