// Package blob stores uploaded media (product photos, ad banners) in an
// S3-compatible object store.
package blob

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config holds object store connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// ConfigFromEnv builds a Config from MINIO_* environment variables,
// falling back to the given endpoint, SSL mode and bucket.
func ConfigFromEnv(endpoint string, useSSL bool, bucket string) Config {
	cfg := Config{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    useSSL,
		Bucket:    bucket,
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("MINIO_BUCKET_NAME"); v != "" {
		cfg.Bucket = v
	}
	return cfg
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Store wraps a MinIO client scoped to a single bucket.
type Store struct {
	client *minio.Client
	bucket string
}

// New connects to the object store and ensures the bucket exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to object store: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// ObjectName generates a unique object key under folder, keeping the
// original file extension.
func ObjectName(folder, filename string) string {
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), filepath.Ext(filename))
}

// Upload stores an object and returns its metadata.
func (s *Store) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*ObjectInfo, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return &ObjectInfo{
		Key:         key,
		Size:        info.Size,
		ContentType: contentType,
		URL:         s.objectURL(key),
		UploadedAt:  time.Now().UTC(),
	}, nil
}

// PresignedPut returns a URL a client can PUT an object to directly,
// valid for the given expiry.
func (s *Store) PresignedPut(ctx context.Context, key string, expiry time.Duration) (*url.URL, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}
	return u, nil
}

// PresignedGet returns a time-limited download URL for an object.
func (s *Store) PresignedGet(ctx context.Context, key string, expiry time.Duration) (*url.URL, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to presign download for %s: %w", key, err)
	}
	return u, nil
}

// Remove deletes an object.
func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *Store) objectURL(key string) string {
	scheme := "http"
	if s.client.EndpointURL().Scheme == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, key)
}
