package ingestion

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/observability"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
)

// Runner ingests a directory of raw per-year ASCII files for one symbol into
// the bar store.
type Runner struct {
	bars    storage.BarStore
	logger  *log.Logger
	metrics *observability.Metrics
}

// NewRunner creates a new ingest runner. metrics may be nil.
func NewRunner(bars storage.BarStore, logger *log.Logger, metrics *observability.Metrics) *Runner {
	if logger == nil {
		logger = log.New(os.Stdout, "[ingest] ", log.LstdFlags)
	}
	return &Runner{bars: bars, logger: logger, metrics: metrics}
}

// Result summarizes one ingest run.
type Result struct {
	Files       int // raw files read
	BarsParsed  int // rows parsed across all files
	BarsDeduped int // duplicate timestamps discarded
	BarsStored  int // bars written to the store
}

// IngestDir reads every DAT_ASCII_<symbol>_M1_<year>.csv under dir in year
// order, normalizes the combined series, and writes it to the bar store in
// one batch.
func (r *Runner) IngestDir(ctx context.Context, dir, symbol string) (*Result, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("DAT_ASCII_%s_M1_*.csv", symbol))
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob raw files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no raw files matching %s", pattern)
	}
	sort.Strings(files)

	result := &Result{}
	var combined []*domain.Bar
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := os.Open(path)
		if err != nil {
			r.countError("open")
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		bars, err := ParseBars(f, symbol)
		f.Close()
		if err != nil {
			r.countError("parse")
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		r.logger.Printf("Parsed %d bars from %s", len(bars), filepath.Base(path))
		result.Files++
		result.BarsParsed += len(bars)
		combined = append(combined, bars...)
	}

	normalized := Normalize(combined)
	result.BarsDeduped = len(combined) - len(normalized)
	if result.BarsDeduped > 0 {
		r.logger.Printf("Discarded %d duplicate-timestamp bars", result.BarsDeduped)
	}

	if err := r.bars.InsertBulk(ctx, normalized); err != nil {
		r.countError("store")
		return nil, fmt.Errorf("store bars: %w", err)
	}
	result.BarsStored = len(normalized)

	if r.metrics != nil {
		r.metrics.FilesIngested.Add(float64(result.Files))
		r.metrics.BarsParsed.Add(float64(result.BarsParsed))
		r.metrics.BarsDeduped.Add(float64(result.BarsDeduped))
		r.metrics.BarsStored.Add(float64(result.BarsStored))
	}

	r.logger.Printf("Ingested %s: %d files, %d bars stored", symbol, result.Files, result.BarsStored)
	return result, nil
}

func (r *Runner) countError(kind string) {
	if r.metrics != nil {
		r.metrics.IngestErrors.WithLabelValues(kind).Inc()
	}
}
