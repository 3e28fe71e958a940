package domain

import "time"

// Bar represents one aggregated minute interval of an instrument's price feed.
// Corresponds to the bars table in PostgreSQL/ClickHouse.
type Bar struct {
	Symbol    string    // instrument identifier, e.g. "GRXEUR"
	Timestamp time.Time // minute-resolution bar open time, UTC
	Open      float64   // first price of the minute
	High      float64   // highest price of the minute
	Low       float64   // lowest price of the minute
	Close     float64   // last price of the minute
	Volume    float64   // traded volume, 0 for index feeds
}

// Column names shared across the pipeline. Raw bar columns are carried through
// the frame unchanged; derived columns are appended after them.
const (
	ColTimestamp = "timestamp"
	ColOpen      = "open"
	ColHigh      = "high"
	ColLow       = "low"
	ColClose     = "close"
	ColVolume    = "volume"
)

// Split labels for the persisted dataset partitions.
const (
	SplitTrain      = "train"
	SplitValidation = "validation"
	SplitTest       = "test"
)
