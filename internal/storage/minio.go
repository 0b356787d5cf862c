package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorage keeps blobs in a MinIO bucket. Selected with
// STORAGE_BACKEND=minio; serving /media from the bucket is then a reverse
// proxy concern, not handled here.
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to MinIO and ensures the bucket exists
func NewMinioStorage(ctx context.Context, endpoint, accessKey, secretKey, bucket string) (*MinioStorage, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("MinIO endpoint is not configured")
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check MinIO bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create MinIO bucket: %w", err)
		}
	}

	return &MinioStorage{client: client, bucket: bucket}, nil
}

func (s *MinioStorage) Save(ctx context.Context, filename string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, filename, r, size, minio.PutObjectOptions{})
	return err
}

func (s *MinioStorage) Remove(ctx context.Context, filename string) error {
	return s.client.RemoveObject(ctx, s.bucket, filename, minio.RemoveObjectOptions{})
}
