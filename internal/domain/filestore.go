package domain

import "context"

// FileStore holds uploaded photo bytes keyed by an opaque storage key.
type FileStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (contentType string, data []byte, err error)
	Delete(ctx context.Context, key string) error
}
