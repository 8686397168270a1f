package ports

import (
	"context"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// ProductInput carries the caller-editable product fields.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
	ImageIDs    []string
}

// ProductService implements product operations. Identity is the caller's
// authenticated principal (nil for anonymous callers); every mutating
// operation checks role and, where relevant, ownership before touching the
// repository. List and Get are open by design.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListOwn(ctx context.Context, identity *domain.Identity) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, identity *domain.Identity, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, identity *domain.Identity, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, identity *domain.Identity, id string) error

	// AttachMedia appends a media id to the product's image list. It is only
	// reachable through the internal trust gate and performs no per-user
	// authorization of its own.
	AttachMedia(ctx context.Context, productID, mediaID string) (*domain.Product, error)
}
