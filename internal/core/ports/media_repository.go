package ports

import (
	"context"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// MediaRepository defines the persistence interface for media records.
type MediaRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Media, error)
	FindByProductID(ctx context.Context, productID string) ([]domain.Media, error)
	Save(ctx context.Context, media *domain.Media) (*domain.Media, error)
}
