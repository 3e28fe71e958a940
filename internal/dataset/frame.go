// Package dataset provides the columnar frame the prep pipeline operates on:
// a timestamp axis plus ordered, name-addressed float64 columns aligned 1:1
// with it. Missing values are NaN sentinels, resolved by DropIncomplete.
package dataset

import (
	"fmt"
	"math"
	"time"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

// Frame is an ordered columnar table for one instrument. Columns are
// append-only: derived columns never replace existing ones, and column order
// is the insertion order so re-runs with the same configuration produce an
// identical schema. The timestamp axis is always a plain aligned column, never
// an implicit index.
type Frame struct {
	symbol string
	ts     []time.Time
	order  []string
	cols   map[string][]float64
}

// New creates an empty frame over the given timestamp axis. The axis is
// expected to be strictly increasing; the loader is responsible for sorting
// and deduplication.
func New(symbol string, ts []time.Time) *Frame {
	axis := make([]time.Time, len(ts))
	copy(axis, ts)
	return &Frame{
		symbol: symbol,
		ts:     axis,
		cols:   make(map[string][]float64),
	}
}

// FromBars builds a frame carrying the raw OHLCV columns.
func FromBars(symbol string, bars []domain.Bar) *Frame {
	n := len(bars)
	ts := make([]time.Time, n)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	cls := make([]float64, n)
	vol := make([]float64, n)
	for i, b := range bars {
		ts[i] = b.Timestamp
		open[i] = b.Open
		high[i] = b.High
		low[i] = b.Low
		cls[i] = b.Close
		vol[i] = b.Volume
	}

	f := New(symbol, ts)
	// Errors are impossible here: names are unique and lengths match by construction.
	_ = f.AddColumn(domain.ColOpen, open)
	_ = f.AddColumn(domain.ColHigh, high)
	_ = f.AddColumn(domain.ColLow, low)
	_ = f.AddColumn(domain.ColClose, cls)
	_ = f.AddColumn(domain.ColVolume, vol)
	return f
}

// Symbol returns the instrument identifier this frame belongs to.
func (f *Frame) Symbol() string { return f.symbol }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.ts) }

// Timestamps returns the aligned timestamp axis. Callers must not modify it.
func (f *Frame) Timestamps() []time.Time { return f.ts }

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Has reports whether a column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns the values of a named column. Callers must not modify the
// returned slice.
func (f *Frame) Column(name string) ([]float64, bool) {
	vals, ok := f.cols[name]
	return vals, ok
}

// AddColumn appends a new column. Existing columns are never replaced.
func (f *Frame) AddColumn(name string, values []float64) error {
	if name == "" {
		return fmt.Errorf("add column: empty name")
	}
	if _, exists := f.cols[name]; exists {
		return fmt.Errorf("add column %q: already exists", name)
	}
	if len(values) != len(f.ts) {
		return fmt.Errorf("add column %q: length %d does not match %d rows", name, len(values), len(f.ts))
	}
	f.cols[name] = values
	f.order = append(f.order, name)
	return nil
}

// Copy returns a deep copy. The core stages operate on a copy so the caller's
// table is never mutated in place.
func (f *Frame) Copy() *Frame {
	out := New(f.symbol, f.ts)
	for _, name := range f.order {
		vals := make([]float64, len(f.cols[name]))
		copy(vals, f.cols[name])
		_ = out.AddColumn(name, vals)
	}
	return out
}

// DropIncomplete returns a frame without rows containing any NaN value, plus
// the number of rows removed. This is the sole recovery mechanism for
// warm-up history and missing forward data at the series boundaries.
func (f *Frame) DropIncomplete() (*Frame, int) {
	keep := make([]int, 0, len(f.ts))
rows:
	for i := range f.ts {
		for _, name := range f.order {
			if math.IsNaN(f.cols[name][i]) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	return f.selectRows(keep), len(f.ts) - len(keep)
}

// Until returns the rows with timestamp <= t.
func (f *Frame) Until(t time.Time) *Frame {
	keep := make([]int, 0, len(f.ts))
	for i, ts := range f.ts {
		if !ts.After(t) {
			keep = append(keep, i)
		}
	}
	return f.selectRows(keep)
}

// Between returns the rows with after < timestamp <= until.
func (f *Frame) Between(after, until time.Time) *Frame {
	keep := make([]int, 0, len(f.ts))
	for i, ts := range f.ts {
		if ts.After(after) && !ts.After(until) {
			keep = append(keep, i)
		}
	}
	return f.selectRows(keep)
}

// selectRows builds a new frame from the given row positions, preserving
// column order.
func (f *Frame) selectRows(keep []int) *Frame {
	ts := make([]time.Time, len(keep))
	for j, i := range keep {
		ts[j] = f.ts[i]
	}
	out := New(f.symbol, ts)
	for _, name := range f.order {
		src := f.cols[name]
		vals := make([]float64, len(keep))
		for j, i := range keep {
			vals[j] = src[i]
		}
		_ = out.AddColumn(name, vals)
	}
	return out
}
