package diff

import (
	"reflect"
	"sort"

	"github.com/keydiff/keydiff/internal/model"
)

// Compare computes the comparison report between two flat views.
// labelA and labelB identify the source documents in the serialized
// report.
//
// The four result partitions are pairwise disjoint and exhaustively cover
// the union of both path sets. Each partition is sorted ascending
// lexicographically so output is deterministic.
func Compare(flatA, flatB model.FlatView, labelA, labelB string) *model.ComparisonReport {
	report := &model.ComparisonReport{
		LabelA:    labelA,
		LabelB:    labelB,
		OnlyInA:   []string{},
		OnlyInB:   []string{},
		Differing: []model.DifferingValue{},
		Identical: []string{},
	}

	var both []string
	for path := range flatA {
		if _, ok := flatB[path]; ok {
			both = append(both, path)
		} else {
			report.OnlyInA = append(report.OnlyInA, path)
		}
	}
	for path := range flatB {
		if _, ok := flatA[path]; !ok {
			report.OnlyInB = append(report.OnlyInB, path)
		}
	}

	sort.Strings(report.OnlyInA)
	sort.Strings(report.OnlyInB)
	sort.Strings(both)

	for _, path := range both {
		if leafEqual(flatA[path], flatB[path]) {
			report.Identical = append(report.Identical, path)
		} else {
			report.Differing = append(report.Differing, model.DifferingValue{
				Key:    path,
				ValueA: flatA[path],
				ValueB: flatB[path],
			})
		}
	}

	return report
}

// leafEqual reports whether two leaf values are equal.
//
// Equality is type-sensitive: the number 1 and the string "1" are not
// equal, and floats compare by exact equality with no tolerance. The
// loader normalizes all numbers to float64, so numerically equal leaves
// from different input formats still compare equal.
func leafEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
