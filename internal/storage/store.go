package storage

import (
	"context"
	"io"
	"time"
)

// ObjectStore is the blob backend for onboarding uploads.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
