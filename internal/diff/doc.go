// Package diff computes the four-way comparison between two flattened
// document views: paths only in A, paths only in B, paths in both with
// differing values, and paths in both with identical values.
package diff
