package ports

import (
	"context"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// ProductRepository defines the persistence interface for products.
// Save upserts: a product without an ID is inserted, one with an ID is
// replaced.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByOwnerID(ctx context.Context, ownerID string) ([]domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteByID(ctx context.Context, id string) error
}
