package clickhouse

import (
	"context"
	"fmt"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
)

// DatasetStore implements storage.DatasetStore using ClickHouse. Because the
// enriched dataset's column set varies with configuration, each row's derived
// columns are stored as Map(String, Float64); the authoritative model-input
// column order lives in the persisted feature list, not here.
type DatasetStore struct {
	conn *Conn
}

// NewDatasetStore creates a new DatasetStore.
func NewDatasetStore(conn *Conn) *DatasetStore {
	return &DatasetStore{conn: conn}
}

// Compile-time interface check.
var _ storage.DatasetStore = (*DatasetStore)(nil)

// WritePartition persists one (symbol, split) partition. Fails with
// ErrDuplicateKey if the partition already holds rows.
func (s *DatasetStore) WritePartition(ctx context.Context, split string, frame *dataset.Frame) error {
	if frame == nil || split == "" || frame.Symbol() == "" {
		return storage.ErrInvalidInput
	}

	exists, err := s.partitionExists(ctx, frame.Symbol(), split)
	if err != nil {
		return fmt.Errorf("check partition exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO dataset_rows (
			symbol, split, ts, columns
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	cols := frame.Columns()
	series := make([][]float64, len(cols))
	for i, name := range cols {
		series[i], _ = frame.Column(name)
	}

	ts := frame.Timestamps()
	for row := range ts {
		values := make(map[string]float64, len(cols))
		for i, name := range cols {
			values[name] = series[i][row]
		}
		if err := batch.Append(frame.Symbol(), split, ts[row].UTC(), values); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// RowCount returns the number of persisted rows in a partition.
func (s *DatasetStore) RowCount(ctx context.Context, symbol, split string) (int, error) {
	query := `
		SELECT count(*) FROM dataset_rows
		WHERE symbol = ? AND split = ?
	`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, symbol, split).Scan(&count); err != nil {
		return 0, fmt.Errorf("count partition rows: %w", err)
	}
	return int(count), nil
}

// partitionExists checks whether a partition already holds rows.
func (s *DatasetStore) partitionExists(ctx context.Context, symbol, split string) (bool, error) {
	count, err := s.RowCount(ctx, symbol, split)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
