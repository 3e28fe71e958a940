package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
)

// DatasetStore is an in-memory implementation of storage.DatasetStore.
type DatasetStore struct {
	mu   sync.RWMutex
	data map[string]*dataset.Frame // keyed by (symbol, split)
}

// NewDatasetStore creates a new in-memory dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{
		data: make(map[string]*dataset.Frame),
	}
}

// partitionKey generates a unique key for a partition.
func partitionKey(symbol, split string) string {
	return fmt.Sprintf("%s|%s", symbol, split)
}

// WritePartition persists one partition. Fails on an already-written
// (symbol, split) pair: processed outputs are immutable.
func (s *DatasetStore) WritePartition(_ context.Context, split string, frame *dataset.Frame) error {
	if frame == nil || split == "" || frame.Symbol() == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := partitionKey(frame.Symbol(), split)
	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[key] = frame.Copy()
	return nil
}

// Partition returns a stored partition frame. Returns ErrNotFound if the
// partition has not been written. Test helper beyond the DatasetStore
// interface.
func (s *DatasetStore) Partition(symbol, split string) (*dataset.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	frame, ok := s.data[partitionKey(symbol, split)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return frame.Copy(), nil
}

var _ storage.DatasetStore = (*DatasetStore)(nil)
