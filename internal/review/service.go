package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/campsite/internal/authz"
	"github.com/dmitrymomot/campsite/internal/campground"
	"github.com/dmitrymomot/campsite/pkg/sanitizer"
	"github.com/dmitrymomot/campsite/pkg/validator"
)

// CampgroundStore is the slice of the campground store the review
// lifecycle manager needs: existence checks and reference-set updates.
type CampgroundStore interface {
	Get(ctx context.Context, id string) (*campground.Campground, error)
	PushReview(ctx context.Context, campgroundID, reviewID string) error
	PullReview(ctx context.Context, campgroundID, reviewID string) error
}

// Service is the review lifecycle manager.
type Service struct {
	store       Store
	campgrounds CampgroundStore
	log         *slog.Logger
}

// NewService creates the review lifecycle manager.
func NewService(store Store, campgrounds CampgroundStore, log *slog.Logger) *Service {
	return &Service{
		store:       store,
		campgrounds: campgrounds,
		log:         log,
	}
}

// Input carries the review fields supplied by the caller.
type Input struct {
	Body   string
	Rating int
}

func (in Input) validate() error {
	return validator.Apply(
		validator.RequiredString("body", in.Body),
		validator.MaxLenString("body", in.Body, 2000),
		validator.IntBetween("rating", in.Rating, 1, 5),
	)
}

// Create attaches a new review by the principal to an existing
// campground: the review record is persisted with its back-reference,
// then the review id is pushed into the campground's reference set. A
// failed push after a persisted record is a detectable inconsistency
// and is reported, not swallowed.
func (s *Service) Create(ctx context.Context, p *authz.Principal, campgroundID string, in Input) (*Review, error) {
	if p == nil || p.ID == "" {
		return nil, authz.ErrUnauthenticated
	}
	if _, err := s.campgrounds.Get(ctx, campgroundID); err != nil {
		return nil, err
	}
	// Strip markup first so an HTML-only body cannot pass the
	// required-field rule.
	in.Body = sanitizer.StripHTML(in.Body)
	if err := in.validate(); err != nil {
		return nil, err
	}

	r := &Review{
		ID:           uuid.NewString(),
		Body:         in.Body,
		Rating:       in.Rating,
		AuthorID:     p.ID,
		CampgroundID: campgroundID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}
	if err := s.campgrounds.PushReview(ctx, campgroundID, r.ID); err != nil {
		s.log.ErrorContext(ctx, "review created but reference push failed",
			slog.String("review_id", r.ID),
			slog.String("campground_id", campgroundID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("review: reference push failed: %w", err)
	}

	s.log.InfoContext(ctx, "review created",
		slog.String("review_id", r.ID),
		slog.String("campground_id", campgroundID),
		slog.String("author_id", p.ID))

	return r, nil
}

// Delete removes the review after checking that the principal is its
// author. The campground's reference set is pulled first, then the
// review record goes away; the symmetry invariant holds once both
// writes complete.
func (s *Service) Delete(ctx context.Context, p *authz.Principal, campgroundID, reviewID string) error {
	r, err := s.store.Get(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := authz.CanMutate(p, r); err != nil {
		return err
	}

	// Trust the stored back-reference over the caller-supplied id. A
	// campground deleted by a racing request is tolerated; the review
	// record still has to go.
	if err := s.campgrounds.PullReview(ctx, r.CampgroundID, reviewID); err != nil && !errors.Is(err, campground.ErrNotFound) {
		return err
	}
	if err := s.store.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "review deleted",
		slog.String("review_id", reviewID),
		slog.String("campground_id", r.CampgroundID))

	return nil
}

// ListByCampground loads all reviews attached to a campground.
func (s *Service) ListByCampground(ctx context.Context, campgroundID string) ([]*Review, error) {
	return s.store.ListByCampground(ctx, campgroundID)
}
