package repository

import (
	"context"
	"errors"

	"user-manager/internal/domain"
)

var (
	// ErrNotFound indicates that no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrConflict indicates a unique constraint on username or email was violated.
	ErrConflict = errors.New("user already exists")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}
