package ports

import (
	"context"

	"github.com/lojinha/catalog-api/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Login    string
	Password string
	Roles    string
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token alongside the authenticated user.
	// Unknown login and wrong password both collapse into
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
}
