// Package photostore keeps uploaded hotel photos in a MinIO (S3-compatible)
// bucket.
package photostore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"hotel_directory/internal/adapters/observability"
)

// ErrDisabled is returned by every operation when no endpoint is configured.
var ErrDisabled = errors.New("photo store not configured")

type Config struct {
	Endpoint  string // host:port; empty disables the store
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
}

type Store struct {
	mc     *minio.Client
	bucket string

	once      sync.Once
	bucketErr error
}

func New(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return &Store{}, nil
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("photo bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &Store{mc: mc, bucket: cfg.Bucket}, nil
}

func (s *Store) Enabled() bool { return s.mc != nil }

// ensureBucket creates the bucket on first use. A failure is remembered so
// later uploads fail fast.
func (s *Store) ensureBucket(ctx context.Context) error {
	s.once.Do(func() {
		exists, err := s.mc.BucketExists(ctx, s.bucket)
		if err != nil {
			s.bucketErr = err
			return
		}
		if !exists {
			s.bucketErr = s.mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		}
	})
	return s.bucketErr
}

// Put uploads r as object name. size must be the exact byte count.
func (s *Store) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("photo bucket: %w", err)
	}
	start := time.Now()
	_, err := s.mc.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	status := 200
	if err != nil {
		status = minio.ToErrorResponse(err).StatusCode
	}
	observability.ObserveExternal("photostore", "put", status, time.Since(start))
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}
