package storage

import (
	"context"
	"encoding/base64"
	"fmt"
)

// InlineStorage keeps audio as base64 data URIs. No external object store
// is needed, at the cost of row size; fine for small deployments and tests.
type InlineStorage struct{}

// NewInlineStorage creates an inline data-URI storage
func NewInlineStorage() *InlineStorage {
	return &InlineStorage{}
}

// Upload encodes the object as a data URI. The key is unused because the
// data itself is the URL.
func (s *InlineStorage) Upload(_ context.Context, _, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}

// Delete is a no-op for inline storage
func (s *InlineStorage) Delete(_ context.Context, _ string) error {
	return nil
}

// KeyFromURL returns "" because data URIs store nothing externally
func (s *InlineStorage) KeyFromURL(_ string) string {
	return ""
}
