// Package flatten converts a nested document tree into a flat mapping
// from separator-joined path strings to leaf values.
//
// Mapping steps contribute the literal key, sequence steps contribute the
// zero-based index rendered as a decimal string. A top-level scalar
// document flattens to a single entry keyed by the empty string.
package flatten
