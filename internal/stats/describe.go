// Package stats computes descriptive statistics and findings for a raw bar
// frame, backing the data-understanding report.
package stats

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics for one numeric series. NaN entries
// are ignored; an all-NaN or empty series yields Count 0 and NaN moments.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// Describe computes the summary of a series.
func Describe(values []float64) Summary {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}

	s := Summary{Count: len(clean)}
	if len(clean) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.P25, s.Median, s.P75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	var sum float64
	for _, v := range clean {
		sum += v
	}
	s.Mean = sum / float64(len(clean))

	if len(clean) > 1 {
		var sq float64
		for _, v := range clean {
			d := v - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(len(clean)-1))
	}

	sort.Float64s(clean)
	s.Min = clean[0]
	s.Max = clean[len(clean)-1]
	s.P25 = quantile(clean, 0.25)
	s.Median = quantile(clean, 0.5)
	s.P75 = quantile(clean, 0.75)
	return s
}

// quantile returns the q-quantile of a sorted series using linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
