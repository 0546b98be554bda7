package integrity_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/campsite/internal/authz"
	"github.com/dmitrymomot/campsite/internal/campground"
	"github.com/dmitrymomot/campsite/internal/integrity"
	"github.com/dmitrymomot/campsite/internal/review"
	"github.com/dmitrymomot/campsite/pkg/geocode"
)

type staticGeocoder struct{}

func (staticGeocoder) Forward(_ context.Context, _ string, _ int) ([]geocode.Match, error) {
	return []geocode.Match{{Point: geocode.Point{Longitude: -119.5383, Latitude: 37.8651}}}, nil
}

type noopBlobs struct{}

func (noopBlobs) Delete(_ context.Context, _ string) error { return nil }

func TestCheck(t *testing.T) {
	t.Parallel()

	t.Run("empty stores are consistent", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, integrity.Check(context.Background(),
			campground.NewMemoryStore(), review.NewMemoryStore()))
	})

	t.Run("review referencing a missing campground", func(t *testing.T) {
		t.Parallel()
		reviews := review.NewMemoryStore()
		require.NoError(t, reviews.Create(context.Background(), &review.Review{
			ID: "rev-1", Body: "x", Rating: 3, AuthorID: "u", CampgroundID: "gone",
		}))

		err := integrity.Check(context.Background(), campground.NewMemoryStore(), reviews)
		assert.ErrorIs(t, err, integrity.ErrReferentialInconsistency)
	})

	t.Run("back-reference without reference-set entry", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		campgrounds := campground.NewMemoryStore()
		reviews := review.NewMemoryStore()

		require.NoError(t, campgrounds.Create(ctx, &campground.Campground{ID: "camp-1", AuthorID: "u"}))
		require.NoError(t, reviews.Create(ctx, &review.Review{
			ID: "rev-1", Body: "x", Rating: 3, AuthorID: "u", CampgroundID: "camp-1",
		}))

		err := integrity.Check(ctx, campgrounds, reviews)
		assert.ErrorIs(t, err, integrity.ErrReferentialInconsistency)
	})

	t.Run("reference-set entry without a matching review", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		campgrounds := campground.NewMemoryStore()

		require.NoError(t, campgrounds.Create(ctx, &campground.Campground{ID: "camp-1", AuthorID: "u"}))
		require.NoError(t, campgrounds.PushReview(ctx, "camp-1", "phantom-review"))

		err := integrity.Check(ctx, campgrounds, review.NewMemoryStore())
		assert.ErrorIs(t, err, integrity.ErrReferentialInconsistency)
	})
}

// TestLifecycleScenario walks the full flow: create a campground,
// review it as a different user, then let the author delete the
// campground. Symmetry must hold at every step and nothing may remain
// retrievable at the end.
func TestLifecycleScenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	author := &authz.Principal{ID: "user-author", Username: "author"}
	visitor := &authz.Principal{ID: "user-visitor", Username: "visitor"}

	campgrounds := campground.NewMemoryStore()
	reviews := review.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	campgroundSvc := campground.NewService(campgrounds, noopBlobs{}, staticGeocoder{}, reviews, log)
	reviewSvc := review.NewService(reviews, campgrounds, log)

	c, err := campgroundSvc.Create(ctx, author, campground.Input{
		Title:    "Glacier Point",
		Location: "Yosemite",
		Price:    45,
	}, []campground.Image{{URL: "https://cdn.example.com/a.jpg", Handle: "campgrounds/a.jpg"}})
	require.NoError(t, err)
	assert.NotZero(t, c.Geometry.Latitude)
	assert.Empty(t, c.ReviewIDs)
	require.NoError(t, integrity.Check(ctx, campgrounds, reviews))

	r, err := reviewSvc.Create(ctx, visitor, c.ID, review.Input{Body: "Great!", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, c.ID, r.CampgroundID)

	stored, err := campgrounds.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasReview(r.ID))
	require.NoError(t, integrity.Check(ctx, campgrounds, reviews))

	require.NoError(t, campgroundSvc.Delete(ctx, author, c.ID))

	_, err = campgrounds.Get(ctx, c.ID)
	assert.ErrorIs(t, err, campground.ErrNotFound)
	_, err = reviews.Get(ctx, r.ID)
	assert.ErrorIs(t, err, review.ErrNotFound)
	require.NoError(t, integrity.Check(ctx, campgrounds, reviews))
}
