package storage

import (
	"context"
	"fmt"
	"mime/multipart"
)

// UploadFile uploads a multipart file header to storage under prefix.
// Returns ErrEmptyFile when the header is nil or has zero size.
func UploadFile(ctx context.Context, s BlobStorage, fh *multipart.FileHeader, prefix string) (*Object, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open file: %w", err)
	}
	defer f.Close()

	return s.Upload(ctx, f, fh.Size, prefix)
}
