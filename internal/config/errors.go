package config

import "errors"

// Configuration validation errors.
// These are package-level sentinel errors so callers can branch with
// errors.Is while still getting a human-readable message.
var (
	// ErrEmptySeparator is returned when the path separator is empty.
	// Joining path segments with an empty separator would make distinct
	// paths collide (e.g. "ab"+"c" vs "a"+"bc").
	ErrEmptySeparator = errors.New("invalid separator: must not be empty")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one report format can be written.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrNoOutput is returned when the output path is empty and stdout
	// output was not requested.
	ErrNoOutput = errors.New("no output destination: provide --output or --stdout")

	// ErrInvalidConcurrency is returned when the batch concurrency is
	// not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
