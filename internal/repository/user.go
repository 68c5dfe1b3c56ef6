package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	// CreateUser inserts a user. Returns domain.ErrUsernameTaken on a duplicate username.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
