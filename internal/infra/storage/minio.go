// Package storage provides blob storage adapters for uploaded documents
// and generated narration audio.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/edubot/edubot-backend/internal/domain/blob"
)

// MinioStorage stores objects in any S3-compatible service.
type MinioStorage struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewMinioStorage constructs the storage adapter.
func NewMinioStorage(endpoint, accessKey, secretKey, bucket, region string, logger *slog.Logger) (*MinioStorage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cleanEndpoint := sanitizeEndpoint(endpoint)
	useSSL := strings.HasPrefix(strings.ToLower(endpoint), "https")
	client, err := minio.New(cleanEndpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure:       useSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	return &MinioStorage{client: client, bucket: bucket, logger: logger.With("component", "storage.minio")}, nil
}

func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err == nil && exists {
		return nil
	}
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil && minio.ToErrorResponse(err).Code != "BucketAlreadyOwnedByYou" {
		return err
	}
	return nil
}

// Put uploads data under the given key.
func (s *MinioStorage) Put(ctx context.Context, key string, data []byte, mimeType string) (blob.StoredObject, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return blob.StoredObject{}, err
	}
	reader := bytes.NewReader(data)
	info, err := s.client.PutObject(ctx, s.bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType:      mimeType,
		DisableMultipart: len(data) < 5*1024*1024, // small uploads as single part
	})
	if err != nil {
		return blob.StoredObject{}, err
	}
	return blob.StoredObject{
		Key:      key,
		Size:     info.Size,
		MimeType: mimeType,
		ETag:     info.ETag,
	}, nil
}

// Get fetches an object for reading.
func (s *MinioStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// Ensure object exists before returning reader.
	if _, statErr := obj.Stat(); statErr != nil {
		return nil, statErr
	}
	return obj, nil
}

// Delete removes an object.
func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

var _ blob.ObjectStorage = (*MinioStorage)(nil)

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		raw = parts[0]
	}
	return raw
}
