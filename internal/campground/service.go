package campground

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/campsite/internal/authz"
	"github.com/dmitrymomot/campsite/pkg/geocode"
	"github.com/dmitrymomot/campsite/pkg/sanitizer"
	"github.com/dmitrymomot/campsite/pkg/validator"
)

// BlobDeleter is the slice of the object storage adapter the lifecycle
// manager needs: uploads happen in the transport layer before the
// manager is invoked, deletion is the manager's job.
type BlobDeleter interface {
	Delete(ctx context.Context, handle string) error
}

// ReviewDeleter deletes review records during the cascading cleanup of
// a deleted campground. Delete must be idempotent: a record already
// gone, for instance removed by a storage-level cascade, is not an
// error.
type ReviewDeleter interface {
	Delete(ctx context.Context, reviewID string) error
}

// Service is the campground lifecycle manager.
type Service struct {
	store    Store
	blobs    BlobDeleter
	geocoder geocode.Geocoder
	reviews  ReviewDeleter
	log      *slog.Logger
}

// NewService creates the campground lifecycle manager.
func NewService(store Store, blobs BlobDeleter, geocoder geocode.Geocoder, reviews ReviewDeleter, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		blobs:    blobs,
		geocoder: geocoder,
		reviews:  reviews,
		log:      log,
	}
}

// Input carries the scalar campground fields supplied by the caller.
type Input struct {
	Title       string
	Location    string
	Price       float64
	Description string
}

func (in Input) validate() error {
	return validator.Apply(
		validator.RequiredString("title", in.Title),
		validator.MaxLenString("title", in.Title, 120),
		validator.RequiredString("location", in.Location),
		validator.MaxLenString("location", in.Location, 200),
		validator.MinFloat64("price", in.Price, 0),
		validator.MaxLenString("description", in.Description, 5000),
	)
}

// sanitized strips HTML from the text fields. Runs before validation so
// markup-only input cannot satisfy the required-field rules.
func (in Input) sanitized() Input {
	in.Title = sanitizer.StripHTML(in.Title)
	in.Location = sanitizer.StripHTML(in.Location)
	in.Description = sanitizer.StripHTML(in.Description)
	return in
}

// Create validates fields, geocodes the location and persists a new
// campground owned by the principal. The uploads were already stored by
// the object storage adapter; items whose upload failed never reach this
// method, and nothing rolls back already-uploaded blobs when a later
// step fails. Zero geocode matches abort the operation: no campground
// is persisted without geometry.
func (s *Service) Create(ctx context.Context, p *authz.Principal, in Input, uploads []Image) (*Campground, error) {
	if p == nil || p.ID == "" {
		return nil, authz.ErrUnauthenticated
	}
	in = in.sanitized()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := checkUniqueHandles(nil, uploads); err != nil {
		return nil, err
	}

	matches, err := s.geocoder.Forward(ctx, in.Location, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrGeocodeFailed, geocode.ErrNoMatch)
	}

	now := time.Now().UTC()
	c := &Campground{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Location:    in.Location,
		Geometry:    matches[0].Point,
		Price:       in.Price,
		Description: in.Description,
		Images:      uploads,
		AuthorID:    p.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "campground created",
		slog.String("campground_id", c.ID),
		slog.String("author_id", c.AuthorID),
		slog.Int("images", len(c.Images)))

	return c, nil
}

// Update applies scalar changes and appends newImages to the image
// sequence, then removes the images named by deleteHandles. Geometry is
// left untouched even when the location text changes. For each handle
// the storage deletion runs first; a handle whose storage deletion
// fails keeps its entry in the sequence, and the returned
// *ImageDeleteError lists both outcomes so the caller can retry only
// the failed subset.
func (s *Service) Update(ctx context.Context, p *authz.Principal, id string, in Input, newImages []Image, deleteHandles []string) (*Campground, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanMutate(p, c); err != nil {
		return nil, err
	}
	in = in.sanitized()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := checkUniqueHandles(c.Images, newImages); err != nil {
		return nil, err
	}

	c.Title = in.Title
	c.Location = in.Location
	c.Price = in.Price
	c.Description = in.Description
	c.Images = append(c.Images, newImages...)

	var delErr *ImageDeleteError
	if len(deleteHandles) > 0 {
		removed := make(map[string]bool, len(deleteHandles))
		delErr = &ImageDeleteError{Failed: make(map[string]error)}

		for _, handle := range deleteHandles {
			if err := s.blobs.Delete(ctx, handle); err != nil {
				// Deletion status unknown; keep the sequence entry so
				// the blob reference is not orphaned.
				delErr.Failed[handle] = err
				s.log.WarnContext(ctx, "image blob deletion failed",
					slog.String("campground_id", c.ID),
					slog.String("handle", handle),
					slog.String("error", err.Error()))
				continue
			}
			removed[handle] = true
			delErr.Deleted = append(delErr.Deleted, handle)
		}

		kept := c.Images[:0]
		for _, img := range c.Images {
			if !removed[img.Handle] {
				kept = append(kept, img)
			}
		}
		c.Images = kept

		if len(delErr.Failed) == 0 {
			delErr = nil
		}
	}

	c.UpdatedAt = time.Now().UTC()
	if err := s.store.Update(ctx, c); err != nil {
		return nil, err
	}

	if delErr != nil {
		return c, delErr
	}
	return c, nil
}

// Delete removes the campground and cascades deletion to every review
// it referenced. The review identifiers are captured before the record
// is deleted, since the reference set is gone afterwards. Image blobs
// are intentionally not purged here; the janitor sweep reclaims them.
func (s *Service) Delete(ctx context.Context, p *authz.Principal, id string) error {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanMutate(p, c); err != nil {
		return err
	}

	reviewIDs := append([]string(nil), c.ReviewIDs...)

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	var cascadeErrs []error
	for _, reviewID := range reviewIDs {
		if err := s.reviews.Delete(ctx, reviewID); err != nil {
			cascadeErrs = append(cascadeErrs, fmt.Errorf("review %s: %w", reviewID, err))
		}
	}
	if len(cascadeErrs) > 0 {
		err := errors.Join(cascadeErrs...)
		s.log.ErrorContext(ctx, "cascading review cleanup incomplete",
			slog.String("campground_id", id),
			slog.String("error", err.Error()))
		return err
	}

	s.log.InfoContext(ctx, "campground deleted",
		slog.String("campground_id", id),
		slog.Int("reviews_removed", len(reviewIDs)))

	return nil
}

// Get loads a single campground.
func (s *Service) Get(ctx context.Context, id string) (*Campground, error) {
	return s.store.Get(ctx, id)
}

// List loads all campgrounds.
func (s *Service) List(ctx context.Context) ([]*Campground, error) {
	return s.store.List(ctx)
}

// checkUniqueHandles rejects additions that would repeat a storage
// handle within one image sequence.
func checkUniqueHandles(existing, additions []Image) error {
	seen := make(map[string]bool, len(existing)+len(additions))
	for _, img := range existing {
		seen[img.Handle] = true
	}
	for _, img := range additions {
		if seen[img.Handle] {
			return fmt.Errorf("%w: %s", ErrDuplicateHandle, img.Handle)
		}
		seen[img.Handle] = true
	}
	return nil
}
