// Package storage implements the file store on the local filesystem. The
// media service validates size and type before anything reaches Store; this
// layer only moves bytes.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore persists files in a flat directory. Locators are generated
// UUIDs plus the original extension, so they are safe to embed in URLs and
// never collide.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed and returns a store rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Store writes data under a fresh UUID locator and returns the locator.
func (s *DiskStore) Store(_ context.Context, ext string, data []byte) (string, error) {
	locator := uuid.NewString() + sanitizeExt(ext)
	if err := os.WriteFile(filepath.Join(s.dir, locator), data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return locator, nil
}

// Retrieve reads the bytes stored under locator. A locator containing path
// separators is rejected outright. The fs.ErrNotExist from a missing file
// is passed through for the caller to map.
func (s *DiskStore) Retrieve(_ context.Context, locator string) ([]byte, error) {
	if locator == "" || filepath.Base(locator) != locator {
		return nil, os.ErrNotExist
	}
	return os.ReadFile(filepath.Join(s.dir, locator))
}

// sanitizeExt keeps only a plain ".xyz" suffix; anything suspicious is
// dropped rather than written to disk.
func sanitizeExt(ext string) string {
	if ext == "" || !strings.HasPrefix(ext, ".") {
		return ""
	}
	for _, r := range ext[1:] {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return ""
		}
	}
	return strings.ToLower(ext)
}
