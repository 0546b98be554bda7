// Package integrity verifies the referential-symmetry invariant between
// campgrounds and reviews: for every campground, the review reference
// set must equal the set of reviews whose back-reference names that
// campground, and no review may point at a campground that is gone.
//
// A healthy system never trips this check; it exists for tests and for
// the janitor sweep to detect drift after partial failures.
package integrity

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/campsite/internal/campground"
	"github.com/dmitrymomot/campsite/internal/review"
)

// ErrReferentialInconsistency reports that a campground's reference set
// and the reviews' back-references disagree.
var ErrReferentialInconsistency = errors.New("integrity: campground reference set and review back-references disagree")

// CampgroundSource lists all campgrounds.
type CampgroundSource interface {
	List(ctx context.Context) ([]*campground.Campground, error)
}

// ReviewSource lists all reviews.
type ReviewSource interface {
	List(ctx context.Context) ([]*review.Review, error)
}

// Check walks both stores and returns ErrReferentialInconsistency
// (wrapped with the first offending pair) when the symmetry invariant
// does not hold.
func Check(ctx context.Context, campgrounds CampgroundSource, reviews ReviewSource) error {
	cs, err := campgrounds.List(ctx)
	if err != nil {
		return err
	}
	rs, err := reviews.List(ctx)
	if err != nil {
		return err
	}

	refs := make(map[string]map[string]bool, len(cs)) // campground id -> reference set
	for _, c := range cs {
		set := make(map[string]bool, len(c.ReviewIDs))
		for _, id := range c.ReviewIDs {
			set[id] = true
		}
		refs[c.ID] = set
	}

	backrefs := make(map[string]string, len(rs)) // review id -> campground id
	for _, r := range rs {
		backrefs[r.ID] = r.CampgroundID

		set, ok := refs[r.CampgroundID]
		if !ok {
			return fmt.Errorf("%w: review %s references missing campground %s",
				ErrReferentialInconsistency, r.ID, r.CampgroundID)
		}
		if !set[r.ID] {
			return fmt.Errorf("%w: review %s not in reference set of campground %s",
				ErrReferentialInconsistency, r.ID, r.CampgroundID)
		}
	}

	for campgroundID, set := range refs {
		for reviewID := range set {
			if backrefs[reviewID] != campgroundID {
				return fmt.Errorf("%w: campground %s references review %s with back-reference %q",
					ErrReferentialInconsistency, campgroundID, reviewID, backrefs[reviewID])
			}
		}
	}

	return nil
}
