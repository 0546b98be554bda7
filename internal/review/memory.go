package review

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and local development.
type MemoryStore struct {
	mu      sync.RWMutex
	reviews map[string]*Review
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reviews: make(map[string]*Review)}
}

func (s *MemoryStore) Create(_ context.Context, r *Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *r
	s.reviews[r.ID] = &clone
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		clone := *r
		list = append(list, &clone)
	}
	return list, nil
}

func (s *MemoryStore) ListByCampground(_ context.Context, campgroundID string) ([]*Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []*Review
	for _, r := range s.reviews {
		if r.CampgroundID == campgroundID {
			clone := *r
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.reviews, id)
	return nil
}

var _ Store = (*MemoryStore)(nil)
