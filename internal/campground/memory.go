package campground

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and local development.
// Entities are copied on the way in and out so callers cannot mutate
// stored state behind the lock.
type MemoryStore struct {
	mu          sync.RWMutex
	campgrounds map[string]*Campground
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{campgrounds: make(map[string]*Campground)}
}

func (s *MemoryStore) Create(_ context.Context, c *Campground) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campgrounds[c.ID] = cloneCampground(c)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Campground, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campgrounds[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneCampground(c), nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Campground, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Campground, 0, len(s.campgrounds))
	for _, c := range s.campgrounds {
		list = append(list, cloneCampground(c))
	}
	return list, nil
}

func (s *MemoryStore) Update(_ context.Context, c *Campground) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.campgrounds[c.ID]
	if !ok {
		return ErrNotFound
	}

	// Scalar fields and the image sequence come from the caller; the
	// reference set is owned by Push/PullReview and kept as stored.
	updated := cloneCampground(c)
	updated.ReviewIDs = slices.Clone(stored.ReviewIDs)
	s.campgrounds[c.ID] = updated
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campgrounds[id]; !ok {
		return ErrNotFound
	}
	delete(s.campgrounds, id)
	return nil
}

func (s *MemoryStore) PushReview(_ context.Context, campgroundID, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campgrounds[campgroundID]
	if !ok {
		return ErrNotFound
	}
	if !slices.Contains(c.ReviewIDs, reviewID) {
		c.ReviewIDs = append(c.ReviewIDs, reviewID)
	}
	return nil
}

func (s *MemoryStore) PullReview(_ context.Context, campgroundID, reviewID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campgrounds[campgroundID]
	if !ok {
		return ErrNotFound
	}
	c.ReviewIDs = slices.DeleteFunc(c.ReviewIDs, func(id string) bool { return id == reviewID })
	return nil
}

func cloneCampground(c *Campground) *Campground {
	clone := *c
	clone.Images = slices.Clone(c.Images)
	clone.ReviewIDs = slices.Clone(c.ReviewIDs)
	return &clone
}

var _ Store = (*MemoryStore)(nil)
