// Package janitor reclaims orphaned image blobs. Deleting a campground
// leaves its blobs in the bucket on purpose (the delete path stays
// cheap and storage-failure-free); the janitor periodically lists the
// bucket and removes every blob whose handle no longer appears in any
// campground's image sequence.
package janitor

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/campsite/internal/campground"
)

// BlobStore is the storage slice the janitor needs.
type BlobStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, handle string) error
}

// CampgroundLister lists all campgrounds so referenced handles can be
// collected.
type CampgroundLister interface {
	List(ctx context.Context) ([]*campground.Campground, error)
}

// Janitor sweeps unreferenced blobs under a storage prefix.
type Janitor struct {
	blobs       BlobStore
	campgrounds CampgroundLister
	prefix      string
	log         *slog.Logger
}

// New creates a janitor sweeping blobs under prefix.
func New(blobs BlobStore, campgrounds CampgroundLister, prefix string, log *slog.Logger) *Janitor {
	return &Janitor{
		blobs:       blobs,
		campgrounds: campgrounds,
		prefix:      prefix,
		log:         log,
	}
}

// Sweep deletes every stored blob under the prefix that no campground
// references, returning the number of blobs removed. The bucket is
// listed BEFORE the campground records are read, so any blob whose
// record lands by the time references are collected is protected. A
// blob whose create has not persisted its record yet can still be
// misclassified; the sweep must not run at upload-burst frequency.
func (j *Janitor) Sweep(ctx context.Context) (int, error) {
	handles, err := j.blobs.List(ctx, j.prefix)
	if err != nil {
		return 0, err
	}

	campgrounds, err := j.campgrounds.List(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]bool)
	for _, c := range campgrounds {
		for _, handle := range c.ImageHandles() {
			referenced[handle] = true
		}
	}

	removed := 0
	for _, handle := range handles {
		if referenced[handle] {
			continue
		}
		if err := j.blobs.Delete(ctx, handle); err != nil {
			j.log.WarnContext(ctx, "orphaned blob deletion failed",
				slog.String("handle", handle),
				slog.String("error", err.Error()))
			continue
		}
		removed++
	}

	if removed > 0 {
		j.log.InfoContext(ctx, "orphaned blobs swept", slog.Int("removed", removed))
	}

	return removed, nil
}

// Schedule registers the sweep with the cron scheduler.
func (j *Janitor) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if _, err := j.Sweep(context.Background()); err != nil {
			j.log.Error("janitor sweep failed", slog.String("error", err.Error()))
		}
	})
}
