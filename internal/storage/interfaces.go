package storage

import (
	"context"
	"time"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

// BarStore provides access to raw minute-bar storage.
type BarStore interface {
	// InsertBulk adds multiple bars atomically. Fails the entire batch with
	// ErrDuplicateKey if any (symbol, timestamp) already exists.
	InsertBulk(ctx context.Context, bars []*domain.Bar) error

	// GetBySymbol retrieves all bars for a symbol, ordered by timestamp ASC.
	GetBySymbol(ctx context.Context, symbol string) ([]*domain.Bar, error)

	// GetByTimeRange retrieves bars for a symbol within [start, end]
	// (inclusive), ordered by timestamp ASC.
	GetByTimeRange(ctx context.Context, symbol string, start, end time.Time) ([]*domain.Bar, error)
}

// DatasetStore persists the enriched, pruned dataset partitions.
type DatasetStore interface {
	// WritePartition persists one chronological partition of a symbol's
	// dataset. Fails with ErrDuplicateKey if the (symbol, split) partition
	// was already written: processed outputs are immutable once persisted.
	WritePartition(ctx context.Context, split string, frame *dataset.Frame) error
}

// FeatureListStore persists the ordered model-input column names, written
// once per processed-output location.
type FeatureListStore interface {
	// Write persists the feature list. Writing an identical list again is a
	// no-op; a differing list fails with ErrFeatureListMismatch.
	Write(ctx context.Context, names []string) error

	// Read returns the persisted list in order. Returns ErrNotFound if no
	// list has been written yet.
	Read(ctx context.Context) ([]string, error)
}
