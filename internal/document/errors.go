package document

import "errors"

// Loader errors.
// Callers branch on ErrNotFound with errors.Is to distinguish a missing
// input (checked before any parsing) from a parse failure.
var (
	// ErrNotFound is returned when an input path does not reference an
	// existing regular file.
	ErrNotFound = errors.New("input file not found")
)
