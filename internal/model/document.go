package model

// Kind classifies a document value into one of the three shapes the
// comparison pipeline distinguishes. The set is closed: every value a
// Document can hold is a mapping, a sequence, or a scalar leaf
// (string, number, boolean, or null).
type Kind uint8

const (
	// KindScalar is a leaf value: string, number, boolean, or null.
	KindScalar Kind = iota

	// KindMapping is an object with string keys. Key order is irrelevant
	// because all report output is sorted downstream.
	KindMapping

	// KindSequence is an ordered list. Elements are addressed by their
	// zero-based index.
	KindSequence
)

// String returns the kind name for logging and error messages.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "scalar"
	}
}

// Document is one parsed input file. It is immutable once loaded:
// nothing in the pipeline mutates Value after the loader returns it.
type Document struct {
	// Path is the file path the document was loaded from.
	Path string

	// Label identifies this document in report output. It is usually the
	// file's basename, falling back to the full path when both inputs
	// share a basename.
	Label string

	// Value is the parsed document tree: map[string]any for mappings,
	// []any for sequences, and string/float64/bool/nil for leaves.
	// Numeric leaves are normalized to float64 by the loader.
	Value any
}

// KindOf reports the shape of a document value.
func KindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	default:
		return KindScalar
	}
}

// CountLeaves returns the number of scalar leaves in a document value.
// An empty mapping or sequence contains no leaves.
func CountLeaves(v any) int {
	switch val := v.(type) {
	case map[string]any:
		n := 0
		for _, child := range val {
			n += CountLeaves(child)
		}
		return n
	case []any:
		n := 0
		for _, child := range val {
			n += CountLeaves(child)
		}
		return n
	default:
		return 1
	}
}
