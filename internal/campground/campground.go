// Package campground holds the campground entity and its lifecycle
// manager: creation with mandatory geocoding, additive image updates
// with storage-first deletion, and owner-only mutation with cascading
// review cleanup on delete.
package campground

import (
	"slices"
	"time"

	"github.com/dmitrymomot/campsite/pkg/geocode"
)

// Image is one element of a campground's image sequence. The handle is
// the join key with the object storage adapter and must be unique
// within the sequence.
type Image struct {
	URL    string
	Handle string
}

// Campground is a listed campground. AuthorID is set once at creation
// from the authenticated principal and never reassigned. Geometry is
// derived from Location at creation time and not recomputed when the
// location text is edited later.
type Campground struct {
	ID          string
	Title       string
	Location    string
	Geometry    geocode.Point
	Price       float64
	Description string
	Images      []Image
	AuthorID    string
	ReviewIDs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnerID implements authz.Resource.
func (c *Campground) OwnerID() string { return c.AuthorID }

// HasReview reports whether the reference set contains reviewID.
func (c *Campground) HasReview(reviewID string) bool {
	return slices.Contains(c.ReviewIDs, reviewID)
}

// ImageHandles returns the handles of the image sequence, in order.
func (c *Campground) ImageHandles() []string {
	handles := make([]string, 0, len(c.Images))
	for _, img := range c.Images {
		handles = append(handles, img.Handle)
	}
	return handles
}
