package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Storage implements BlobStorage using S3-compatible object storage.
// Uploaded images are world-readable: campground pages embed the URL
// directly, so there is no signed-URL indirection.
type S3Storage struct {
	client *s3.Client
	cfg    Config
}

// New creates an S3Storage with the given configuration.
func New(cfg Config) (*S3Storage, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Storage{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

// Upload stores data in the bucket under an auto-generated handle
// ({prefix}/{uuid}.{ext}) and returns the public URL and handle.
func (s *S3Storage) Upload(ctx context.Context, r io.Reader, size int64, prefix string) (*Object, error) {
	if size == 0 {
		return nil, ErrEmptyFile
	}

	contentType, body, err := detectContentType(r)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to read input: %w", err)
	}

	handle := buildHandle(prefix, contentType)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(handle),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           types.ObjectCannedACLPublicRead,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &Object{
		URL:         s.publicURL(handle),
		Handle:      handle,
		ContentType: contentType,
		Size:        size,
	}, nil
}

// Delete removes the blob addressed by handle.
func (s *S3Storage) Delete(ctx context.Context, handle string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(handle),
	}

	if _, err := s.client.DeleteObject(ctx, input); err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}

	return nil
}

// List returns the handles of all blobs under prefix, following
// pagination until the listing is exhausted.
func (s *S3Storage) List(ctx context.Context, prefix string) ([]string, error) {
	var handles []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.cfg.Bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, wrapS3Error(err, ErrListFailed)
		}
		for _, obj := range page.Contents {
			if obj.Key != nil {
				handles = append(handles, *obj.Key)
			}
		}
	}

	return handles, nil
}

// publicURL builds the stable URL for a stored blob.
func (s *S3Storage) publicURL(handle string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimSuffix(s.cfg.PublicURL, "/") + "/" + handle
	}

	if s.cfg.Endpoint != "" {
		endpoint := strings.TrimSuffix(s.cfg.Endpoint, "/")
		if s.cfg.PathStyle {
			return fmt.Sprintf("%s/%s/%s", endpoint, s.cfg.Bucket, handle)
		}
		return fmt.Sprintf("%s/%s", endpoint, handle)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, handle)
}

// detectContentType sniffs the MIME type from the first 512 bytes and
// returns a reader that replays the consumed bytes.
func detectContentType(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]

	contentType := detectMIME(head)
	return contentType, io.MultiReader(bytes.NewReader(head), r), nil
}

// buildHandle constructs a storage handle: {prefix}/{uuid}.{ext}.
func buildHandle(prefix, contentType string) string {
	name := uuid.NewString() + extFromMIME(contentType)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

var _ BlobStorage = (*S3Storage)(nil)
