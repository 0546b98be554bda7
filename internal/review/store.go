package review

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("review: not found")

// Store is the persistent store for reviews. Lookups return
// ErrNotFound for missing identifiers; Delete is idempotent, so a
// record already gone is not an error. The campground cascade relies
// on that: a storage-level cascade may remove review rows before the
// procedural cascade reaches them.
type Store interface {
	Create(ctx context.Context, r *Review) error
	Get(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context) ([]*Review, error)
	ListByCampground(ctx context.Context, campgroundID string) ([]*Review, error)
	Delete(ctx context.Context, id string) error
}
