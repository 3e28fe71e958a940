package storage

import "errors"

// Storage errors for append-only stores.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when attempting to insert a record
	// with a key that already exists. Append-only stores do not allow updates.
	ErrDuplicateKey = errors.New("duplicate key: append-only store does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFeatureListMismatch is returned when a feature list has already been
	// persisted for this location with different content. A stale list that
	// no longer matches the dataset's columns is a data-integrity bug, so
	// re-runs with a changed configuration must target a fresh location.
	ErrFeatureListMismatch = errors.New("feature list already exists with different content")
)
