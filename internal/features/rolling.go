package features

import "math"

// Rolling statistics use an expanding window at the series start (minimum
// periods of 1) so values near the beginning are noisier rather than
// undefined. All helpers run in time linear in the series length by
// maintaining sliding sums instead of re-scanning each window.

// rollingMean returns the windowed mean of vals.
func rollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	var sum float64
	for i, v := range vals {
		sum += v
		count := window
		if i+1 < window {
			count = i + 1
		} else if i >= window {
			sum -= vals[i-window]
		}
		out[i] = sum / float64(count)
	}
	return out
}

// rollingStd returns the windowed sample standard deviation of vals. A window
// holding fewer than two samples has no spread and yields 0.
func rollingStd(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	var sum, sumSq float64
	for i, v := range vals {
		sum += v
		sumSq += v * v
		count := window
		if i+1 < window {
			count = i + 1
		} else if i >= window {
			old := vals[i-window]
			sum -= old
			sumSq -= old * old
		}
		if count < 2 {
			out[i] = 0
			continue
		}
		c := float64(count)
		variance := (sumSq - sum*sum/c) / (c - 1)
		if variance < 0 {
			// Sliding-sum cancellation can push a near-zero variance negative.
			variance = 0
		}
		out[i] = math.Sqrt(variance)
	}
	return out
}

// ema returns an exponential moving average with smoothing alpha = 2/(span+1),
// seeded with the first observation. The recurrence only ever looks backward.
func ema(vals []float64, span int) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = vals[0]
	for i := 1; i < len(vals); i++ {
		out[i] = alpha*vals[i] + (1-alpha)*out[i-1]
	}
	return out
}

// diff returns first differences, NaN at row 0.
func diff(vals []float64) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}
	out[0] = math.NaN()
	for i := 1; i < len(vals); i++ {
		out[i] = vals[i] - vals[i-1]
	}
	return out
}
