package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var ErrObjectNotFound = errors.New("object not found")

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// Minio serves downloadable product files out of a single bucket.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio connects to MinIO and creates the bucket if it is missing. A
// bucket check failure is logged, not fatal, so the API can still start.
func NewMinio(ctx context.Context, cfg MinioConfig) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to minio: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		slog.Warn("failed to check bucket existence", "bucket", cfg.Bucket, "err", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			slog.Warn("failed to create bucket", "bucket", cfg.Bucket, "err", err)
		} else {
			slog.Info("created bucket", "bucket", cfg.Bucket)
		}
	}

	slog.Info("connected to minio", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return &Minio{client: client, bucket: cfg.Bucket}, nil
}

func (m *Minio) PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	if _, err := m.client.StatObject(ctx, m.bucket, objectName, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", ErrObjectNotFound
		}
		return "", fmt.Errorf("stat object %s: %w", objectName, err)
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned url: %w", err)
	}
	return u.String(), nil
}

func (m *Minio) BucketExists(ctx context.Context) (bool, error) {
	return m.client.BucketExists(ctx, m.bucket)
}
