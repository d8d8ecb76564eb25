package objstore

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
)

// Client wraps a MinIO connection with the buckets the platform uses.
type Client struct {
	mc *minio.Client
}

// New connects to MinIO and ensures the configured buckets exist.
func New(cfg config.ObjectStoreConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()
	for _, bucket := range []string{cfg.ResumeBucket, cfg.CertBucket} {
		if bucket == "" {
			continue
		}
		exists, err := mc.BucketExists(ctx, bucket)
		if err != nil {
			return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
		}
		if !exists {
			if err := mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
	}

	return &Client{mc: mc}, nil
}

// Minio exposes the underlying client for bucket-scoped stores.
func (c *Client) Minio() *minio.Client {
	return c.mc
}
