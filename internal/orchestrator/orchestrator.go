// Package orchestrator runs the pre-split preparation pipeline per symbol:
// load bars → trend targets → features → drop incomplete rows → feature list
// → chronological split → persist partitions.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/features"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/observability"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/split"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/targets"
)

// Orchestrator coordinates the prep pipeline execution.
type Orchestrator struct {
	barStore         storage.BarStore
	datasetStore     storage.DatasetStore
	featureListStore storage.FeatureListStore

	config  domain.PrepConfig
	symbols []string

	logger  *log.Logger
	metrics *observability.Metrics
	verbose bool
}

// Options for creating Orchestrator.
type Options struct {
	// Required stores
	BarStore         storage.BarStore
	DatasetStore     storage.DatasetStore
	FeatureListStore storage.FeatureListStore

	// Prep configuration; validated on Run
	Config domain.PrepConfig

	// Symbols to process, one series at a time
	Symbols []string

	Logger  *log.Logger
	Metrics *observability.Metrics // may be nil
	Verbose bool
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		barStore:         opts.BarStore,
		datasetStore:     opts.DatasetStore,
		featureListStore: opts.FeatureListStore,
		config:           opts.Config,
		symbols:          opts.Symbols,
		logger:           logger,
		metrics:          opts.Metrics,
		verbose:          opts.Verbose,
	}
}

// SymbolResult summarizes one symbol's run.
type SymbolResult struct {
	Symbol         string
	RowsLoaded     int
	RowsDropped    int
	TrainRows      int
	ValidationRows int
	TestRows       int
	Features       []string
}

// RunResult contains results from the whole run.
type RunResult struct {
	Symbols []SymbolResult
	Errors  []string
}

// Run validates the configuration and processes every symbol. Configuration
// errors abort before any store write; per-symbol failures are collected so
// one broken feed does not block the rest.
func (o *Orchestrator) Run(ctx context.Context) (*RunResult, error) {
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	if len(o.symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols", domain.ErrInvalidConfig)
	}

	result := &RunResult{}
	for _, symbol := range o.symbols {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		sr, err := o.processSymbol(ctx, symbol)
		if err != nil {
			o.countRun("error")
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", symbol, err))
			continue
		}
		o.countRun("ok")
		result.Symbols = append(result.Symbols, *sr)
	}

	return result, nil
}

// processSymbol runs all stages for one symbol.
func (o *Orchestrator) processSymbol(ctx context.Context, symbol string) (*SymbolResult, error) {
	o.log("Processing %s", symbol)

	bars, err := o.barStore.GetBySymbol(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("load bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("load bars: %w", domain.ErrEmptyInput)
	}

	derefBars := make([]domain.Bar, len(bars))
	for i, b := range bars {
		derefBars[i] = *b
	}
	frame := dataset.FromBars(symbol, derefBars)
	o.log("  Loaded %d rows from %s to %s",
		frame.Len(),
		frame.Timestamps()[0].UTC().Format(time.RFC3339),
		frame.Timestamps()[frame.Len()-1].UTC().Format(time.RFC3339))

	// Targets before features; their trailing NaNs must be present when
	// incomplete rows are pruned.
	start := time.Now()
	if err := targets.Add(frame, o.config.PredictionPeriods, o.config.DeadZone()); err != nil {
		return nil, fmt.Errorf("compute targets: %w", err)
	}
	o.observeStage("targets", start)

	start = time.Now()
	featureNames, err := features.Generate(frame, o.config)
	if err != nil {
		return nil, fmt.Errorf("generate features: %w", err)
	}
	o.observeStage("features", start)
	o.log("  Generated %d features", len(featureNames))

	pruned, dropped := frame.DropIncomplete()
	o.log("  Dropped %d incomplete rows", dropped)

	// The feature list is written before the partitions so a mismatch from a
	// changed configuration aborts without touching the dataset store.
	if err := o.featureListStore.Write(ctx, featureNames); err != nil {
		return nil, fmt.Errorf("write feature list: %w", err)
	}

	parts := split.Chronological(pruned, o.config)
	start = time.Now()
	for _, p := range []struct {
		name  string
		frame *dataset.Frame
	}{
		{domain.SplitTrain, parts.Train},
		{domain.SplitValidation, parts.Validation},
		{domain.SplitTest, parts.Test},
	} {
		if err := o.datasetStore.WritePartition(ctx, p.name, p.frame); err != nil {
			return nil, fmt.Errorf("write %s partition: %w", p.name, err)
		}
		o.log("  %s: %d rows", p.name, p.frame.Len())
		if o.metrics != nil {
			o.metrics.PartitionRowsWritten.WithLabelValues(p.name).Add(float64(p.frame.Len()))
		}
	}
	o.observeStage("persist", start)

	if o.metrics != nil {
		o.metrics.RowsLoaded.Add(float64(frame.Len()))
		o.metrics.RowsDropped.Add(float64(dropped))
		o.metrics.FeatureColumns.Set(float64(len(featureNames)))
		o.metrics.TargetColumns.Set(float64(2 * len(o.config.PredictionPeriods)))
	}

	return &SymbolResult{
		Symbol:         symbol,
		RowsLoaded:     frame.Len(),
		RowsDropped:    dropped,
		TrainRows:      parts.Train.Len(),
		ValidationRows: parts.Validation.Len(),
		TestRows:       parts.Test.Len(),
		Features:       featureNames,
	}, nil
}

func (o *Orchestrator) observeStage(stage string, start time.Time) {
	if o.metrics != nil {
		o.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

func (o *Orchestrator) countRun(status string) {
	if o.metrics != nil {
		o.metrics.PrepRunsTotal.WithLabelValues(status).Inc()
	}
}

func (o *Orchestrator) log(format string, args ...any) {
	if o.verbose {
		o.logger.Printf(format, args...)
	}
}
