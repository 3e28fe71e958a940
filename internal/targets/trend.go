// Package targets computes forward-looking trend targets: for each look-ahead
// period, the least-squares slope of the next p prices normalized by the
// window's mean price, and a signed direction label derived from it.
package targets

import (
	"fmt"
	"math"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

// TrendColumn returns the continuous target column name for a period.
func TrendColumn(period int) string {
	return fmt.Sprintf("target_trend_%dm", period)
}

// DirectionColumn returns the categorical target column name for a period.
func DirectionColumn(period int) string {
	return fmt.Sprintf("target_direction_%dm", period)
}

// NormalizedSlopes computes, for every row i, the OLS slope of the forward
// window prices[i+1 .. i+period] against the integer axis 0..period-1,
// divided by the window's mean price. Rows without period future prices are
// NaN. A period of 1 has a zero-variance axis and yields an all-NaN series
// instead of a division fault.
//
// The regression's moving sums are maintained incrementally while the window
// slides, so the cost is linear in the series length regardless of period.
func NormalizedSlopes(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: look-ahead period %d must be positive", domain.ErrInvalidConfig, period)
	}
	n := len(prices)
	if n == 0 {
		return nil, fmt.Errorf("normalized slopes: %w", domain.ErrEmptyInput)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	if period == 1 || n <= period {
		return out, nil
	}

	p := float64(period)
	xMean := (p - 1) / 2
	// Sxx = sum((x - xMean)^2) for x = 0..period-1.
	sxx := p * (p*p - 1) / 12

	// Moving sums over the first forward window, prices[1 .. period].
	var sumY, sumXY float64
	for k := 0; k < period; k++ {
		y := prices[1+k]
		sumY += y
		sumXY += float64(k) * y
	}

	for i := 0; i <= n-1-period; i++ {
		yMean := sumY / p
		slope := (sumXY - xMean*sumY) / sxx
		if yMean > 0 {
			out[i] = slope / yMean
		} else {
			out[i] = 0
		}

		// Slide the window one row forward: the departing price had weight 0,
		// every remaining weight drops by one, the arriving price gets p-1.
		next := i + 1 + period
		if next < n {
			departing := prices[i+1]
			arriving := prices[next]
			sumXY -= sumY - departing
			sumXY += (p - 1) * arriving
			sumY += arriving - departing
		}
	}

	return out, nil
}

// Add appends a trend/direction column pair for every configured period. The
// direction label is +1 above the dead-zone, -1 below it, 0 inside it, and
// NaN wherever the slope is undefined so the row is pruned downstream.
func Add(f *dataset.Frame, periods []int, deadZone float64) error {
	prices, ok := f.Column(domain.ColClose)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrMissingColumn, domain.ColClose)
	}

	for _, period := range periods {
		slopes, err := NormalizedSlopes(prices, period)
		if err != nil {
			return fmt.Errorf("period %d: %w", period, err)
		}
		if err := f.AddColumn(TrendColumn(period), slopes); err != nil {
			return err
		}

		directions := make([]float64, len(slopes))
		for i, s := range slopes {
			switch {
			case math.IsNaN(s):
				directions[i] = math.NaN()
			case s > deadZone:
				directions[i] = 1
			case s < -deadZone:
				directions[i] = -1
			default:
				directions[i] = 0
			}
		}
		if err := f.AddColumn(DirectionColumn(period), directions); err != nil {
			return err
		}
	}

	return nil
}
