package domain

import "errors"

// Configuration errors are fatal and surfaced before any computation or store
// write. Per-row boundary effects are not errors: they propagate as NaN values
// and are removed by the drop-incomplete-rows step.
var (
	// ErrInvalidConfig is returned when the prep configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingColumn is returned when a required input column (price,
	// timestamp) is absent from the frame.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyInput is returned when an operation is invoked on a series with
	// no rows. Callers are expected to check data sufficiency first.
	ErrEmptyInput = errors.New("empty input series")
)
