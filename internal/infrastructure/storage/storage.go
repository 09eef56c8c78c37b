package storage

import (
	"context"
	"fmt"

	"github.com/dreamtalk-inc/dreamtalk/internal/shared/config"
	"github.com/dreamtalk-inc/dreamtalk/internal/shared/logger"
)

// ObjectStorage stores recording audio and hands back a URL the client can
// play from.
type ObjectStorage interface {
	// Upload stores the object and returns its URL
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)

	// Delete removes the object. Used to roll back uploads when the
	// database write fails.
	Delete(ctx context.Context, key string) error

	// KeyFromURL recovers the object key from a URL previously returned by
	// Upload. Returns "" when the URL references nothing deletable.
	KeyFromURL(rawURL string) string
}

// New selects a storage backend from configuration. The "inline" provider
// keeps audio as data URIs in the database and needs no external service.
func New(ctx context.Context, cfg config.StorageConfig, log logger.Interface) (ObjectStorage, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(ctx, cfg, log)
	case "inline", "":
		return NewInlineStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}
