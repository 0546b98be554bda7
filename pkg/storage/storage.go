// Package storage provides the object storage adapter for campground
// images, backed by S3-compatible storage (AWS S3, MinIO, etc).
//
// Every uploaded blob is addressed by an opaque handle (its object key).
// The handle is the join key between a campground's image sequence and
// the bucket: the image records persisted by the application carry both
// the public URL and the handle, and deletion goes through the handle.
package storage

import (
	"context"
	"io"
)

// Object describes a stored blob.
type Object struct {
	// URL is the stable public URL serving the blob.
	URL string

	// Handle is the opaque identifier addressing the blob in the bucket.
	Handle string

	// ContentType is the detected MIME type.
	ContentType string

	// Size is the blob size in bytes.
	Size int64
}

// BlobStorage is the object storage adapter consumed by the lifecycle
// managers and the janitor.
type BlobStorage interface {
	// Upload stores data under an auto-generated handle within prefix
	// and returns the stored object's URL and handle.
	Upload(ctx context.Context, r io.Reader, size int64, prefix string) (*Object, error)

	// Delete removes the blob addressed by handle.
	Delete(ctx context.Context, handle string) error

	// List returns the handles of all blobs under prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Config holds S3-compatible storage configuration, populated from
// environment variables.
type Config struct {
	// Bucket is the bucket name (required).
	Bucket string `env:"STORAGE_BUCKET,required"`

	// AccessKey and SecretKey are the static credentials (required).
	AccessKey string `env:"STORAGE_ACCESS_KEY,required"`
	SecretKey string `env:"STORAGE_SECRET_KEY,required"`

	// Endpoint is a custom S3 endpoint (optional, for MinIO and friends).
	Endpoint string `env:"STORAGE_ENDPOINT"`

	// Region is the bucket region.
	Region string `env:"STORAGE_REGION" envDefault:"us-east-1"`

	// PublicURL is a CDN or public URL prefix; when set, object URLs use
	// it instead of the bucket URL.
	PublicURL string `env:"STORAGE_PUBLIC_URL"`

	// PathStyle enables path-style bucket addressing (required for MinIO).
	PathStyle bool `env:"STORAGE_PATH_STYLE" envDefault:"false"`
}

func (c Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
