package ports

import "context"

// UploadDeduper provides idempotency for media uploads keyed by the
// caller-supplied Idempotency-Key header.
type UploadDeduper interface {
	// Lookup returns the media id previously stored under key, if any.
	Lookup(ctx context.Context, key string) (mediaID string, found bool, err error)
	// Remember records key -> mediaID for the dedup window.
	Remember(ctx context.Context, key, mediaID string) error
}
