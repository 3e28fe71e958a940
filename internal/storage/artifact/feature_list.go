// Package artifact persists pipeline side artifacts to plain files.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
)

// FeatureListFile is the artifact file name inside the processed-output
// directory.
const FeatureListFile = "features.txt"

// FeatureListStore writes the ordered feature names to features.txt in the
// processed-output directory, one name per line. The file is immutable once
// written: a re-run producing a different list is rejected so downstream
// consumers never pair stale names with fresh columns.
type FeatureListStore struct {
	dir string
}

// NewFeatureListStore creates a feature list store rooted at dir.
func NewFeatureListStore(dir string) *FeatureListStore {
	return &FeatureListStore{dir: dir}
}

// path returns the artifact location.
func (s *FeatureListStore) path() string {
	return filepath.Join(s.dir, FeatureListFile)
}

// Write persists the list. Identical re-writes are no-ops; differing content
// fails with ErrFeatureListMismatch.
func (s *FeatureListStore) Write(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return storage.ErrInvalidInput
	}

	existing, err := s.Read(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err == nil {
		if strings.Join(existing, "\n") != strings.Join(names, "\n") {
			return fmt.Errorf("%w: %s", storage.ErrFeatureListMismatch, s.path())
		}
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(s.path(), []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write feature list: %w", err)
	}
	return nil
}

// Read returns the persisted list in file order.
func (s *FeatureListStore) Read(_ context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read feature list: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

var _ storage.FeatureListStore = (*FeatureListStore)(nil)
