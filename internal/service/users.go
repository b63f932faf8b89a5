package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pairloom/profiles/internal/errs"
	"github.com/pairloom/profiles/internal/model"
	"github.com/pairloom/profiles/internal/repository"
	"github.com/pairloom/profiles/internal/server"
	"github.com/pairloom/profiles/internal/sqlerr"
)

// Client-facing messages for domain outcomes. These are part of the API
// contract, not decoration.
const (
	msgUserNotFound      = "User not found"
	msgUserAlreadyExists = "User with this ID already exists"
)

// UserService maps record-store outcomes to domain errors. It holds no
// per-request state; every method is a synchronous pass-through to the
// repository.
type UserService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewUserService constructs a UserService.
func NewUserService(s *server.Server, repos *repository.Repositories) *UserService {
	return &UserService{
		server: s,
		repos:  repos,
	}
}

// List returns users matching the filter. No matches is a successful
// empty list, never an error.
func (s *UserService) List(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	return s.repos.Users.List(ctx, filter)
}

// Get returns the user with the given id, or a 404 domain error.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError(msgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

// Create inserts a new user. A key collision — detected atomically by the
// primary-key constraint — becomes a 400 with a fixed message and leaves
// the existing record untouched.
func (s *UserService) Create(ctx context.Context, user model.User) (*model.User, error) {
	created, err := s.repos.Users.Create(ctx, user)
	if err != nil {
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			return nil, errs.NewBadRequestError(msgUserAlreadyExists)
		}
		return nil, err
	}
	return created, nil
}

// Replace overwrites every field of the user at id. Absence is a 404;
// replace never creates.
func (s *UserService) Replace(ctx context.Context, id int64, user model.User) (*model.User, error) {
	updated, err := s.repos.Users.Replace(ctx, id, user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError(msgUserNotFound)
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes the user at id and returns the confirmation message.
// Absence is a 404, including for a repeated delete.
func (s *UserService) Delete(ctx context.Context, id int64) (string, error) {
	if err := s.repos.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errs.NewNotFoundError(msgUserNotFound)
		}
		return "", err
	}
	return fmt.Sprintf("User %d deleted successfully", id), nil
}
