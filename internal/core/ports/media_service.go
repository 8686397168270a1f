package ports

import (
	"context"

	"github.com/marketkit/marketplace-system/internal/core/domain"
)

// UploadInput carries one uploaded file plus the product it belongs to.
// Data is fully buffered by the handler; size and type are validated by the
// service before any storage side effect.
type UploadInput struct {
	FileName       string
	ContentType    string
	Data           []byte
	ProductID      string
	IdempotencyKey string
}

// MediaService implements media upload and retrieval. Upload is seller-only;
// the reads are open by design.
type MediaService interface {
	Upload(ctx context.Context, identity *domain.Identity, input UploadInput) (*domain.Media, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Media, error)
	GetFile(ctx context.Context, filename string) (data []byte, contentType string, err error)
}
