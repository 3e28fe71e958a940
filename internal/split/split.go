// Package split partitions the enriched dataset chronologically.
package split

import (
	"github.com/piinutbutter/dataScienceProjektGr3/internal/dataset"
	"github.com/piinutbutter/dataScienceProjektGr3/internal/domain"
)

// Partitions holds the three chronological slices of one symbol's dataset.
type Partitions struct {
	Train      *dataset.Frame
	Validation *dataset.Frame
	Test       *dataset.Frame
}

// Chronological slices the frame by the configured boundary timestamps:
// train covers everything up to and including TrainEnd, validation the span
// (TrainEnd, ValidationEnd], test the span (ValidationEnd, TestEnd]. Rows
// after TestEnd are discarded.
func Chronological(f *dataset.Frame, cfg domain.PrepConfig) Partitions {
	return Partitions{
		Train:      f.Until(cfg.TrainEnd),
		Validation: f.Between(cfg.TrainEnd, cfg.ValidationEnd),
		Test:       f.Between(cfg.ValidationEnd, cfg.TestEnd),
	}
}
