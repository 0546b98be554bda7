package campground

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("campground: not found")

	// ErrGeocodeFailed aborts creation when the location text resolves
	// to zero geographic points. No campground is persisted.
	ErrGeocodeFailed = errors.New("campground: could not geocode location")

	// ErrDuplicateHandle rejects an image append that would repeat a
	// storage handle already present in the sequence.
	ErrDuplicateHandle = errors.New("campground: duplicate image handle")
)

// ImageDeleteError reports a partially failed image removal. Handles in
// Deleted were removed from storage and from the image sequence; handles
// in Failed hit a storage error and their entries were kept in the
// sequence so the blobs are not orphaned. The caller can retry exactly
// the failed subset.
type ImageDeleteError struct {
	Deleted []string
	Failed  map[string]error
}

func (e *ImageDeleteError) Error() string {
	failed := make([]string, 0, len(e.Failed))
	for handle := range e.Failed {
		failed = append(failed, handle)
	}
	return fmt.Sprintf("campground: failed to delete %d of %d images (failed: %s)",
		len(e.Failed), len(e.Failed)+len(e.Deleted), strings.Join(failed, ", "))
}

// FailedHandles returns the handles whose storage deletion failed.
func (e *ImageDeleteError) FailedHandles() []string {
	handles := make([]string, 0, len(e.Failed))
	for handle := range e.Failed {
		handles = append(handles, handle)
	}
	return handles
}
