package memory

import (
	"context"
	"sync"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
)

// FeatureListStore is an in-memory implementation of storage.FeatureListStore.
type FeatureListStore struct {
	mu    sync.RWMutex
	names []string
	set   bool
}

// NewFeatureListStore creates a new in-memory feature list store.
func NewFeatureListStore() *FeatureListStore {
	return &FeatureListStore{}
}

// Write persists the feature list. Identical re-writes are no-ops; a
// differing list fails with ErrFeatureListMismatch.
func (s *FeatureListStore) Write(_ context.Context, names []string) error {
	if len(names) == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		if !equalNames(s.names, names) {
			return storage.ErrFeatureListMismatch
		}
		return nil
	}

	s.names = make([]string, len(names))
	copy(s.names, names)
	s.set = true
	return nil
}

// Read returns the persisted list in order.
func (s *FeatureListStore) Read(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set {
		return nil, storage.ErrNotFound
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out, nil
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var _ storage.FeatureListStore = (*FeatureListStore)(nil)
