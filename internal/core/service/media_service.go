package service

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketkit/marketplace-system/internal/api/metrics"
	"github.com/marketkit/marketplace-system/internal/core/authz"
	"github.com/marketkit/marketplace-system/internal/core/domain"
	"github.com/marketkit/marketplace-system/internal/core/ports"
)

// MaxUploadSize is the hard cap on uploaded file size.
const MaxUploadSize = 2 << 20 // 2MB

var allowedContentTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
}

// MediaService implements upload and retrieval for the media service.
// After an upload has durably committed it fires a best-effort notification
// toward the product service; that call can never fail the upload.
type MediaService struct {
	repo          ports.MediaRepository
	store         ports.FileStore
	notifier      ports.MediaSyncNotifier
	dedup         ports.UploadDeduper
	publicBaseURL string
	logger        zerolog.Logger
}

func NewMediaService(repo ports.MediaRepository, store ports.FileStore, notifier ports.MediaSyncNotifier, dedup ports.UploadDeduper, publicBaseURL string, logger zerolog.Logger) *MediaService {
	return &MediaService{
		repo:          repo,
		store:         store,
		notifier:      notifier,
		dedup:         dedup,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// Upload validates, stores, and records one image, then notifies the product
// service. All validation runs before the first storage side effect.
func (s *MediaService) Upload(ctx context.Context, identity *domain.Identity, input ports.UploadInput) (*domain.Media, error) {
	if !authz.RequireRole(identity, domain.RoleSeller) {
		return nil, domain.ErrForbidden
	}
	if input.ProductID == "" {
		return nil, domain.ErrProductIDRequired
	}
	if len(input.Data) == 0 {
		metrics.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrEmptyFile
	}
	if len(input.Data) > MaxUploadSize {
		metrics.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrFileTooLarge
	}
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	if _, ok := allowedContentTypes[contentType]; !ok {
		metrics.MediaUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrUnsupportedMediaType
	}

	if input.IdempotencyKey != "" && s.dedup != nil {
		if mediaID, found, err := s.dedup.Lookup(ctx, input.IdempotencyKey); err != nil {
			// Dedup is an optimization; a broken Redis must not block uploads.
			s.logger.Warn().Err(err).Msg("upload dedup lookup failed")
		} else if found {
			if existing, err := s.repo.FindByID(ctx, mediaID); err == nil {
				metrics.MediaUploadsTotal.WithLabelValues("replayed").Inc()
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Str("media_id", mediaID).Msg("idempotent replay")
				return existing, nil
			}
		}
	}

	locator, err := s.store.Store(ctx, path.Ext(input.FileName), input.Data)
	if err != nil {
		return nil, err
	}

	media := &domain.Media{
		ProductID:   input.ProductID,
		OwnerID:     identity.SubjectID,
		Locator:     locator,
		ContentType: contentType,
		ImagePath:   s.fileURL(locator),
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Save(ctx, media)
	if err != nil {
		return nil, err
	}

	if input.IdempotencyKey != "" && s.dedup != nil {
		if err := s.dedup.Remember(ctx, input.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Msg("upload dedup remember failed")
		}
	}

	// The upload is committed; everything below is best-effort.
	if s.notifier != nil {
		s.notifier.MediaAttached(input.ProductID, created.ID)
	}

	metrics.MediaUploadsTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("media_id", created.ID).Str("product_id", created.ProductID).Msg("media uploaded")
	return created, nil
}

// ListByProduct returns all media for a product. Open by design. Stored
// paths that predate the public-URL scheme are normalized on the way out.
func (s *MediaService) ListByProduct(ctx context.Context, productID string) ([]domain.Media, error) {
	list, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}

	for i := range list {
		p := list[i].ImagePath
		if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			continue
		}
		list[i].ImagePath = s.fileURL(path.Base(p))
	}
	return list, nil
}

// GetFile returns the raw bytes and content type for a stored file. Open by
// design. Locators never contain path separators, so anything that does is
// treated as not found.
func (s *MediaService) GetFile(ctx context.Context, filename string) ([]byte, string, error) {
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return nil, "", domain.ErrMediaNotFound
	}

	data, err := s.store.Retrieve(ctx, filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", domain.ErrMediaNotFound
		}
		return nil, "", err
	}

	return data, contentTypeForExt(path.Ext(filename)), nil
}

func (s *MediaService) fileURL(locator string) string {
	return s.publicBaseURL + "/api/media/file/" + locator
}

func contentTypeForExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
