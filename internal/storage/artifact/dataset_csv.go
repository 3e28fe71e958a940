package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
)

// csvTimeLayout is the timestamp format in persisted partitions.
const csvTimeLayout = "2006-01-02 15:04:05"

// DatasetStore persists dataset partitions as one CSV file per
// (symbol, split) under the processed-output directory, e.g.
// GRXEUR_train.csv. Files are written once; an existing partition file fails
// the write.
type DatasetStore struct {
	dir string
}

// NewDatasetStore creates a file-backed dataset store rooted at dir.
func NewDatasetStore(dir string) *DatasetStore {
	return &DatasetStore{dir: dir}
}

// WritePartition renders and writes one partition file.
func (s *DatasetStore) WritePartition(_ context.Context, split string, frame *dataset.Frame) error {
	if frame == nil || split == "" || frame.Symbol() == "" {
		return storage.ErrInvalidInput
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.csv", frame.Symbol(), split))
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", storage.ErrDuplicateKey, path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat partition file: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := os.WriteFile(path, []byte(renderCSV(frame)), 0o644); err != nil {
		return fmt.Errorf("write partition %s: %w", split, err)
	}
	return nil
}

// renderCSV renders the frame with the timestamp axis as the leading column.
func renderCSV(frame *dataset.Frame) string {
	var sb strings.Builder

	cols := frame.Columns()
	sb.WriteString(domain.ColTimestamp)
	for _, name := range cols {
		sb.WriteString(",")
		sb.WriteString(name)
	}
	sb.WriteString("\n")

	ts := frame.Timestamps()
	series := make([][]float64, len(cols))
	for i, name := range cols {
		series[i], _ = frame.Column(name)
	}

	for row := range ts {
		sb.WriteString(ts[row].UTC().Format(csvTimeLayout))
		for _, vals := range series {
			sb.WriteString(",")
			sb.WriteString(strconv.FormatFloat(vals[row], 'g', -1, 64))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

var _ storage.DatasetStore = (*DatasetStore)(nil)
