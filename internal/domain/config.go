package domain

import (
	"fmt"
	"time"
)

// DefaultDirectionDeadZone is the normalized-slope band treated as "flat" when
// labeling trend direction. Kept configurable: for point-based indices the
// historical 1e-8 default is effectively always exceeded.
const DefaultDirectionDeadZone = 1e-8

// PrepConfig enumerates every parameter list recognized by the target computor
// and the feature generator. Feature sets are derived from this record only,
// never inferred from column naming at runtime.
type PrepConfig struct {
	PredictionPeriods []int // look-ahead horizons in minutes for trend targets
	EMAPeriods        []int // EMA spans in minutes
	SlopePeriods      []int // EMA slope spans in minutes; effective only where a matching EMA span exists
	ZNormWindow       int   // rolling window in minutes for z-normalization

	// DirectionDeadZone is the half-width of the flat band around zero for
	// direction labeling. Zero means DefaultDirectionDeadZone.
	DirectionDeadZone float64

	TrainEnd      time.Time // last timestamp (inclusive) of the train partition
	ValidationEnd time.Time // last timestamp (inclusive) of the validation partition
	TestEnd       time.Time // last timestamp (inclusive) of the test partition
}

// DeadZone returns the effective direction dead-zone threshold.
func (c PrepConfig) DeadZone() float64 {
	if c.DirectionDeadZone > 0 {
		return c.DirectionDeadZone
	}
	return DefaultDirectionDeadZone
}

// Validate checks the configuration and fails fast on the first violation.
// Empty period lists would yield zero targets or features and are rejected.
func (c PrepConfig) Validate() error {
	if len(c.PredictionPeriods) == 0 {
		return fmt.Errorf("%w: no prediction periods", ErrInvalidConfig)
	}
	for _, p := range c.PredictionPeriods {
		if p <= 0 {
			return fmt.Errorf("%w: prediction period %d must be positive", ErrInvalidConfig, p)
		}
	}
	if len(c.EMAPeriods) == 0 {
		return fmt.Errorf("%w: no EMA periods", ErrInvalidConfig)
	}
	for _, p := range c.EMAPeriods {
		if p <= 0 {
			return fmt.Errorf("%w: EMA period %d must be positive", ErrInvalidConfig, p)
		}
	}
	for _, p := range c.SlopePeriods {
		if p <= 0 {
			return fmt.Errorf("%w: slope period %d must be positive", ErrInvalidConfig, p)
		}
	}
	if c.ZNormWindow <= 0 {
		return fmt.Errorf("%w: z-norm window %d must be positive", ErrInvalidConfig, c.ZNormWindow)
	}
	if c.DirectionDeadZone < 0 {
		return fmt.Errorf("%w: direction dead-zone must not be negative", ErrInvalidConfig)
	}
	if !c.TrainEnd.IsZero() && !c.ValidationEnd.IsZero() && c.ValidationEnd.Before(c.TrainEnd) {
		return fmt.Errorf("%w: validation end precedes train end", ErrInvalidConfig)
	}
	if !c.ValidationEnd.IsZero() && !c.TestEnd.IsZero() && c.TestEnd.Before(c.ValidationEnd) {
		return fmt.Errorf("%w: test end precedes validation end", ErrInvalidConfig)
	}
	return nil
}
