package janitor_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/campsite/internal/campground"
	"github.com/dmitrymomot/campsite/internal/janitor"
)

type fakeBlobStore struct {
	handles []string
	failOn  map[string]error
	deleted []string
	listErr error
}

func (b *fakeBlobStore) List(_ context.Context, _ string) ([]string, error) {
	return b.handles, b.listErr
}

func (b *fakeBlobStore) Delete(_ context.Context, handle string) error {
	if err, ok := b.failOn[handle]; ok {
		return err
	}
	b.deleted = append(b.deleted, handle)
	return nil
}

func seedCampground(t *testing.T, store *campground.MemoryStore, id string, handles ...string) {
	t.Helper()

	images := make([]campground.Image, 0, len(handles))
	for _, h := range handles {
		images = append(images, campground.Image{URL: "https://cdn.example.com/" + h, Handle: h})
	}
	require.NoError(t, store.Create(context.Background(), &campground.Campground{
		ID: id, Title: "t", Location: "l", AuthorID: "u", Images: images,
	}))
}

func TestSweep(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("removes only unreferenced blobs", func(t *testing.T) {
		t.Parallel()
		store := campground.NewMemoryStore()
		seedCampground(t, store, "camp-1", "campgrounds/kept.jpg")

		blobs := &fakeBlobStore{handles: []string{"campgrounds/kept.jpg", "campgrounds/orphan.jpg"}}
		j := janitor.New(blobs, store, "campgrounds", log)

		removed, err := j.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Equal(t, []string{"campgrounds/orphan.jpg"}, blobs.deleted)
	})

	t.Run("failed deletions are skipped, not fatal", func(t *testing.T) {
		t.Parallel()
		store := campground.NewMemoryStore()

		blobs := &fakeBlobStore{
			handles: []string{"campgrounds/a.jpg", "campgrounds/b.jpg"},
			failOn:  map[string]error{"campgrounds/a.jpg": errors.New("boom")},
		}
		j := janitor.New(blobs, store, "campgrounds", log)

		removed, err := j.Sweep(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Equal(t, []string{"campgrounds/b.jpg"}, blobs.deleted)
	})

	t.Run("listing failure aborts the sweep", func(t *testing.T) {
		t.Parallel()
		blobs := &fakeBlobStore{listErr: errors.New("bucket unavailable")}
		j := janitor.New(blobs, campground.NewMemoryStore(), "campgrounds", log)

		_, err := j.Sweep(context.Background())
		assert.Error(t, err)
		assert.Empty(t, blobs.deleted)
	})

	t.Run("empty bucket is a no-op", func(t *testing.T) {
		t.Parallel()
		blobs := &fakeBlobStore{}
		j := janitor.New(blobs, campground.NewMemoryStore(), "campgrounds", log)

		removed, err := j.Sweep(context.Background())
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}
