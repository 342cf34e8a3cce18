package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DifferingValue records one path present in both documents whose leaf
// values are not equal.
type DifferingValue struct {
	// Key is the flattened path of the leaf.
	Key string

	// ValueA is the leaf value in document A.
	ValueA any

	// ValueB is the leaf value in document B.
	ValueB any
}

// ComparisonReport is the four-way partition over the union of two
// FlatViews' path sets. The four slices are pairwise disjoint and their
// union covers every path in either view:
//
//	|OnlyInA| + |OnlyInB| + |Differing| + |Identical| = |A ∪ B|
//
// All slices are sorted ascending lexicographically by path. The report
// is computed once by the diff package and immutable afterwards.
type ComparisonReport struct {
	// LabelA and LabelB identify the two compared documents in output.
	// They become part of the serialized field names.
	LabelA string
	LabelB string

	// OnlyInA holds paths present in document A but not in B.
	OnlyInA []string

	// OnlyInB holds paths present in document B but not in A.
	OnlyInB []string

	// Differing holds paths present in both documents with unequal values.
	Differing []DifferingValue

	// Identical holds paths present in both documents with equal values.
	Identical []string
}

// Summary holds the partition sizes for display and history storage.
type Summary struct {
	OnlyInA   int `json:"only_in_a"`
	OnlyInB   int `json:"only_in_b"`
	Differing int `json:"differing"`
	Identical int `json:"identical"`
}

// Total returns the size of the union of both path sets.
func (s Summary) Total() int {
	return s.OnlyInA + s.OnlyInB + s.Differing + s.Identical
}

// Summary returns the partition sizes of the report.
func (r *ComparisonReport) Summary() Summary {
	return Summary{
		OnlyInA:   len(r.OnlyInA),
		OnlyInB:   len(r.OnlyInB),
		Differing: len(r.Differing),
		Identical: len(r.Identical),
	}
}

// InSync reports whether the two documents have identical key sets and
// values, i.e. the only non-empty partition is Identical.
func (r *ComparisonReport) InSync() bool {
	return len(r.OnlyInA) == 0 && len(r.OnlyInB) == 0 && len(r.Differing) == 0
}

// MarshalJSON serializes the report as an object with document-derived
// field names, in fixed order:
//
//	{
//	  "only_in_<labelA>": [...],
//	  "only_in_<labelB>": [...],
//	  "differing_values": [{"key": ..., "<labelA>": ..., "<labelB>": ...}, ...],
//	  "in_both_identical": [...]
//	}
//
// encoding/json cannot express dynamic field names with a guaranteed
// order through struct tags, so the object is assembled by hand. Empty
// partitions serialize as [], never null.
func (r *ComparisonReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeMember(&buf, "only_in_"+r.LabelA, pathList(r.OnlyInA)); err != nil {
		return nil, err
	}
	buf.WriteByte(',')

	if err := writeMember(&buf, "only_in_"+r.LabelB, pathList(r.OnlyInB)); err != nil {
		return nil, err
	}
	buf.WriteByte(',')

	differing, err := r.marshalDiffering()
	if err != nil {
		return nil, err
	}
	if err := writeMember(&buf, "differing_values", differing); err != nil {
		return nil, err
	}
	buf.WriteByte(',')

	if err := writeMember(&buf, "in_both_identical", pathList(r.Identical)); err != nil {
		return nil, err
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalDiffering serializes the differing entries with the document
// labels as field names, preserving key/labelA/labelB field order.
func (r *ComparisonReport) marshalDiffering() (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, d := range r.Differing {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		if err := writeMember(&buf, "key", d.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		if err := writeMember(&buf, r.LabelA, d.ValueA); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		if err := writeMember(&buf, r.LabelB, d.ValueB); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return json.RawMessage(buf.Bytes()), nil
}

// writeMember appends one `"name": value` object member to buf.
func writeMember(buf *bytes.Buffer, name string, value any) error {
	key, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("failed to marshal field name %q: %w", name, err)
	}
	val, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal field %q: %w", name, err)
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(val)
	return nil
}

// pathList guards against nil slices so empty partitions serialize as [].
func pathList(paths []string) []string {
	if paths == nil {
		return []string{}
	}
	return paths
}
