// Package ingestion loads raw per-year ASCII bar files into the bar store.
package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

// asciiTimeLayout is the bar timestamp format in the raw files, e.g.
// "20100104 170000".
const asciiTimeLayout = "20060102 150405"

// ParseBars reads one semicolon-separated ASCII bar file:
//
//	YYYYMMDD HHMMSS;open;high;low;close;volume
//
// Rows come without a header. Timestamps are interpreted as UTC.
func ParseBars(r io.Reader, symbol string) ([]*domain.Bar, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 6
	cr.ReuseRecord = true

	var bars []*domain.Bar
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read bar record: %w", err)
		}
		line++

		ts, err := time.ParseInLocation(asciiTimeLayout, record[0], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse timestamp %q: %w", line, record[0], err)
		}

		var fields [5]float64
		for i := 0; i < 5; i++ {
			fields[i], err = strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parse field %q: %w", line, record[i+1], err)
			}
		}

		bars = append(bars, &domain.Bar{
			Symbol:    symbol,
			Timestamp: ts,
			Open:      fields[0],
			High:      fields[1],
			Low:       fields[2],
			Close:     fields[3],
			Volume:    fields[4],
		})
	}

	return bars, nil
}

// Normalize sorts bars by timestamp and removes duplicate timestamps, keeping
// the last occurrence in input order. After Normalize the invariant holds:
// timestamps are strictly increasing and unique.
func Normalize(bars []*domain.Bar) []*domain.Bar {
	if len(bars) == 0 {
		return bars
	}

	// Stable sort keeps input order among equal timestamps so "last wins"
	// is well defined.
	sorted := make([]*domain.Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	out := sorted[:0]
	for _, b := range sorted {
		if len(out) > 0 && out[len(out)-1].Timestamp.Equal(b.Timestamp) {
			out[len(out)-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
