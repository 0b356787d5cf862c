// Package storage holds uploaded media blobs. The database keeps only the
// stored filename; blobs live on local disk or in a MinIO bucket depending
// on configuration.
package storage

import (
	"context"
	"io"
)

// BlobStorage persists and removes media blobs by their stored filename.
type BlobStorage interface {
	Save(ctx context.Context, filename string, r io.Reader, size int64) error
	Remove(ctx context.Context, filename string) error
}
