package ports

import (
	"context"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements account registration and login. Both operations
// issue a fresh signed token; no session state is kept anywhere.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
