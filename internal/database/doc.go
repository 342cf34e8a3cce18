// Package database provides SQLite-based storage for comparison history.
//
// Each saved run records the compared file paths, the partition counts,
// and the full serialized report, so past comparisons can be listed and
// re-displayed without re-reading the original inputs.
package database
