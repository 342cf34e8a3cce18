// Package model defines the core data structures for document comparison.
//
// The types here follow the lifecycle of a comparison run:
//   - Document: one parsed input file (mappings, sequences, scalar leaves)
//   - FlatView: the path-to-leaf mapping derived from one Document
//   - ComparisonReport: the four-way partition computed from two FlatViews
//
// All types are plain data with no behavior beyond derivation helpers and
// serialization. Transformations between them live in the flatten and diff
// packages, keeping data structures separate from algorithms.
package model
