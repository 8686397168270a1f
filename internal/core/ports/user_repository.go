package ports

import (
	"context"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// UserRepository defines the persistence interface for marketplace accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}
