package ports

import (
	"context"

	"github.com/lojinha/catalog-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with the generated id.
	// A duplicate login yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByLogin returns domain.ErrUserNotFound when no row matches.
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}
