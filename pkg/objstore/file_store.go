package objstore

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
)

// FileStore persists uploaded files in a single bucket and hands out
// time-limited presigned download URLs.
type FileStore struct {
	client       *Client
	bucket       string
	presignedTTL time.Duration
}

// NewFileStore returns a store scoped to one bucket.
func NewFileStore(client *Client, bucket string, presignedTTL time.Duration) *FileStore {
	if presignedTTL <= 0 {
		presignedTTL = 15 * time.Minute
	}
	return &FileStore{client: client, bucket: bucket, presignedTTL: presignedTTL}
}

// Upload stores the reader contents under a prefix-scoped object key and
// returns the key.
func (s *FileStore) Upload(ctx context.Context, prefix, id, filename string, r io.Reader, size int64, contentType string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}
	objectKey := fmt.Sprintf("%s/%s%s", prefix, id, ext)

	if contentType == "" {
		contentType = mime.TypeByExtension(ext)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	_, err := s.client.Minio().PutObject(ctx, s.bucket, objectKey, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return objectKey, nil
}

// URL returns a presigned GET URL for the stored object.
func (s *FileStore) URL(ctx context.Context, objectKey string) (string, error) {
	presigned, err := s.client.Minio().PresignedGetObject(ctx, s.bucket, objectKey, s.presignedTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", objectKey, err)
	}
	return presigned.String(), nil
}

// Delete removes a stored object.
func (s *FileStore) Delete(ctx context.Context, objectKey string) error {
	return s.client.Minio().RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
