package ports

import "context"

// FileStore persists raw file bytes. Store returns an opaque locator that
// Retrieve accepts later; size and type validation happen in the caller
// before Store is reached.
type FileStore interface {
	Store(ctx context.Context, ext string, data []byte) (locator string, err error)
	Retrieve(ctx context.Context, locator string) ([]byte, error)
}
