package storage

import "errors"

// Storage errors for the append-only activity journal.
var (
	// ErrDuplicateKey is returned when a record with the same id already exists.
	ErrDuplicateKey = errors.New("duplicate key: activity journal does not allow updates")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultListLimit is used when a caller passes a non-positive limit.
const DefaultListLimit = 50

// MaxListLimit caps a single page of activity records.
const MaxListLimit = 500

// NormalizeLimit clamps limit into [1, MaxListLimit].
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
