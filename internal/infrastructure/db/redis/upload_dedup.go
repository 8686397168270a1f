package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// UploadDedup provides idempotency for media uploads, backed by Redis.
// Key format: upload:idem:<idempotency_key> → media id
type UploadDedup struct {
	client *redis.Client
}

// NewUploadDedup creates an UploadDedup wrapping the given Redis client.
func NewUploadDedup(client *redis.Client) *UploadDedup {
	return &UploadDedup{client: client}
}

// Lookup returns the media id previously recorded under key, if any.
func (d *UploadDedup) Lookup(ctx context.Context, key string) (string, bool, error) {
	mediaID, err := d.client.Get(ctx, d.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("dedup lookup: %w", err)
	}
	return mediaID, true, nil
}

// Remember records key → mediaID (expires after dedupTTL).
func (d *UploadDedup) Remember(ctx context.Context, key, mediaID string) error {
	return d.client.Set(ctx, d.key(key), mediaID, dedupTTL).Err()
}

func (d *UploadDedup) key(key string) string {
	return "upload:idem:" + key
}
