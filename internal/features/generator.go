// Package features derives the model-input columns from a bar frame:
// normalized price and returns, multi-span EMAs with normalized and
// z-scored variants, first and second order EMA slopes, and calendar
// features from the timestamp axis.
package features

import (
	"fmt"
	"math"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

// epsilon stabilizes denominators that can reach zero.
const epsilon = 1e-8

// EMAColumn returns the raw EMA column name for a span.
func EMAColumn(span int) string { return fmt.Sprintf("ema_%dm", span) }

// Generate appends all configured feature columns to the frame and returns
// the ordered feature-name list. The list is the downstream model-input
// contract: raw OHLCV columns, raw EMA/slope intermediates, and target
// columns are excluded from it. Running twice with identical configuration
// and input produces an identical list in identical order.
//
// The frame is enriched in place; callers that need to preserve the original
// table pass a copy.
func Generate(f *dataset.Frame, cfg domain.PrepConfig) ([]string, error) {
	if f.Len() == 0 {
		return nil, fmt.Errorf("generate features: %w", domain.ErrEmptyInput)
	}
	prices, ok := f.Column(domain.ColClose)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, domain.ColClose)
	}

	var names []string
	add := func(name string, vals []float64, isFeature bool) error {
		if err := f.AddColumn(name, vals); err != nil {
			return err
		}
		if isFeature {
			names = append(names, name)
		}
		return nil
	}

	n := f.Len()
	window := cfg.ZNormWindow

	// Price relative to its rolling mean.
	priceMean := rollingMean(prices, window)
	normalized := make([]float64, n)
	for i := range prices {
		normalized[i] = prices[i]/priceMean[i] - 1
	}
	if err := add("price_normalized", normalized, true); err != nil {
		return nil, err
	}

	// 1-minute returns, undefined at row 0.
	returns := make([]float64, n)
	returns[0] = math.NaN()
	for i := 1; i < n; i++ {
		returns[i] = (prices[i] - prices[i-1]) / prices[i-1]
	}
	if err := add("return_1m", returns, true); err != nil {
		return nil, err
	}

	// EMAs with price-relative and z-scored variants. The raw EMA column is
	// kept for the slope stage but is not a model input.
	for _, span := range cfg.EMAPeriods {
		emaVals := ema(prices, span)
		if err := add(EMAColumn(span), emaVals, false); err != nil {
			return nil, err
		}

		emaNorm := make([]float64, n)
		for i := range emaVals {
			emaNorm[i] = emaVals[i]/prices[i] - 1
		}
		if err := add(fmt.Sprintf("ema_%dm_normalized", span), emaNorm, true); err != nil {
			return nil, err
		}

		emaMean := rollingMean(emaVals, window)
		emaStd := rollingStd(emaVals, window)
		emaZ := make([]float64, n)
		for i := range emaVals {
			emaZ[i] = (emaVals[i] - emaMean[i]) / (emaStd[i] + epsilon)
		}
		if err := add(fmt.Sprintf("ema_%dm_z", span), emaZ, true); err != nil {
			return nil, err
		}
	}

	// EMA slopes and accelerations. Spans without a matching EMA column are
	// skipped: the config must list them under EMAPeriods too to take effect.
	for _, span := range cfg.SlopePeriods {
		emaVals, ok := f.Column(EMAColumn(span))
		if !ok {
			continue
		}

		slope := diff(emaVals)
		if err := add(fmt.Sprintf("slope_ema_%dm", span), slope, false); err != nil {
			return nil, err
		}
		slopeNorm := make([]float64, n)
		for i := range slope {
			slopeNorm[i] = slope[i] / (prices[i] + epsilon)
		}
		if err := add(fmt.Sprintf("slope_ema_%dm_normalized", span), slopeNorm, true); err != nil {
			return nil, err
		}

		slope2 := diff(slope)
		if err := add(fmt.Sprintf("slope2_ema_%dm", span), slope2, false); err != nil {
			return nil, err
		}
		slope2Norm := make([]float64, n)
		for i := range slope2 {
			slope2Norm[i] = slope2[i] / (prices[i] + epsilon)
		}
		if err := add(fmt.Sprintf("slope2_ema_%dm_normalized", span), slope2Norm, true); err != nil {
			return nil, err
		}
	}

	// Z-scored raw price, same window and epsilon.
	priceStd := rollingStd(prices, window)
	priceZ := make([]float64, n)
	for i := range prices {
		priceZ[i] = (prices[i] - priceMean[i]) / (priceStd[i] + epsilon)
	}
	if err := add("price_z", priceZ, true); err != nil {
		return nil, err
	}

	// Intra-minute range, only when the feed carries high/low.
	high, hasHigh := f.Column(domain.ColHigh)
	low, hasLow := f.Column(domain.ColLow)
	if hasHigh && hasLow {
		priceRange := make([]float64, n)
		for i := range prices {
			priceRange[i] = (high[i] - low[i]) / (prices[i] + epsilon)
		}
		if err := add("price_range", priceRange, true); err != nil {
			return nil, err
		}
	}

	// Calendar features from the timestamp axis.
	ts := f.Timestamps()
	minuteOfDay := make([]float64, n)
	dayOfWeek := make([]float64, n)
	hourOfDay := make([]float64, n)
	for i, t := range ts {
		minuteOfDay[i] = float64(t.Hour()*60 + t.Minute())
		// 0 = Monday .. 6 = Sunday.
		dayOfWeek[i] = float64((int(t.Weekday()) + 6) % 7)
		hourOfDay[i] = float64(t.Hour())
	}
	if err := add("minute_of_day", minuteOfDay, true); err != nil {
		return nil, err
	}
	if err := add("day_of_week", dayOfWeek, true); err != nil {
		return nil, err
	}
	if err := add("hour_of_day", hourOfDay, true); err != nil {
		return nil, err
	}

	return names, nil
}
