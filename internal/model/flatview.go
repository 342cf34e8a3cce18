package model

import "sort"

// FlatView maps each leaf path in a document to its scalar value.
// Every leaf in the source document appears exactly once, and every path
// resolves back to exactly one leaf. A FlatView is derived once by the
// flatten package and never mutated afterwards.
type FlatView map[string]any

// Paths returns all paths in ascending lexicographic order.
// Sorted order makes report output deterministic regardless of map
// iteration order.
func (fv FlatView) Paths() []string {
	paths := make([]string, 0, len(fv))
	for p := range fv {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of leaf entries.
func (fv FlatView) Len() int {
	return len(fv)
}
