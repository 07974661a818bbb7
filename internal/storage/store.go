package storage

import (
	"context"
	"io"
)

// FileStore persists uploaded files and hands back an opaque reference that
// clients can resolve to the file bytes.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, ref string) error
}
