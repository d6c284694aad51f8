// Package blob defines the object storage port shared by the ingest and
// speech domains.
package blob

import (
	"context"
	"io"
)

// ObjectStorage abstracts blob storage (MinIO/S3/local memory).
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// StoredObject captures persisted blob metadata.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}
