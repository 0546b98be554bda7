package campground

import "context"

// Store is the persistent store for campgrounds. Implementations must
// return ErrNotFound for missing identifiers and must treat PushReview
// and PullReview as set operations (idempotent, no duplicates).
type Store interface {
	Create(ctx context.Context, c *Campground) error
	Get(ctx context.Context, id string) (*Campground, error)
	List(ctx context.Context) ([]*Campground, error)
	Update(ctx context.Context, c *Campground) error
	Delete(ctx context.Context, id string) error

	// PushReview adds reviewID to the campground's reference set.
	PushReview(ctx context.Context, campgroundID, reviewID string) error

	// PullReview removes reviewID from the campground's reference set.
	PullReview(ctx context.Context, campgroundID, reviewID string) error
}
