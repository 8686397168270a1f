package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketkit/marketplace-system/internal/api/metrics"
	"github.com/marketkit/marketplace-system/internal/core/authz"
	"github.com/marketkit/marketplace-system/internal/core/domain"
	"github.com/marketkit/marketplace-system/internal/core/ports"
)

// ProductService implements product operations for the product service.
// Role and ownership checks happen here, before any repository call, so a
// denied request has no side effects.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// List returns all products. Open by design, no authorization check.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// ListOwn returns the caller's own products.
func (s *ProductService) ListOwn(ctx context.Context, identity *domain.Identity) ([]domain.Product, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByOwnerID(ctx, identity.SubjectID)
}

// Get returns one product by id. Open by design.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new product owned by the calling seller.
func (s *ProductService) Create(ctx context.Context, identity *domain.Identity, input ports.ProductInput) (*domain.Product, error) {
	if !authz.RequireRole(identity, domain.RoleSeller) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	product := &domain.Product{
		OwnerID:     identity.SubjectID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		ImageIDs:    input.ImageIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	metrics.ProductsCreatedTotal.Inc()
	s.logger.Info().Str("product_id", created.ID).Str("owner_id", created.OwnerID).Msg("product created")
	return created, nil
}

// Update replaces the editable fields of a product. The caller must be a
// seller and own the product; otherwise no write happens.
func (s *ProductService) Update(ctx context.Context, identity *domain.Identity, id string, input ports.ProductInput) (*domain.Product, error) {
	if !authz.RequireRole(identity, domain.RoleSeller) {
		return nil, domain.ErrForbidden
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.RequireOwner(identity, existing.OwnerID) {
		return nil, domain.ErrForbidden
	}

	existing.Name = input.Name
	existing.Description = input.Description
	existing.Price = input.Price
	existing.Quantity = input.Quantity
	existing.ImageIDs = input.ImageIDs
	existing.UpdatedAt = time.Now().UTC()

	return s.repo.Save(ctx, existing)
}

// Delete removes a product. Same policy as Update.
func (s *ProductService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	if !authz.RequireRole(identity, domain.RoleSeller) {
		return domain.ErrForbidden
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.RequireOwner(identity, existing.OwnerID) {
		return domain.ErrForbidden
	}

	return s.repo.DeleteByID(ctx, id)
}

// AttachMedia appends a media id to the product's image list. Reachable only
// through the internal trust gate; it deliberately consults no per-user
// policy.
func (s *ProductService) AttachMedia(ctx context.Context, productID, mediaID string) (*domain.Product, error) {
	if mediaID == "" {
		return nil, domain.ErrMediaIDRequired
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.ImageIDs = append(product.ImageIDs, mediaID)
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Save(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Str("media_id", mediaID).Msg("failed to attach media")
		return nil, err
	}

	s.logger.Info().Str("product_id", productID).Str("media_id", mediaID).Msg("media attached")
	return updated, nil
}
