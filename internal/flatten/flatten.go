package flatten

import (
	"strconv"

	"github.com/keydiff/keydiff/internal/model"
)

// Flatten converts a document value into a FlatView keyed by
// separator-joined paths. The prefix is prepended to every path and is
// empty at the top level.
//
// Every leaf in the input appears exactly once in the result. Paths
// cannot collide because mapping keys are unique within one level and
// sequence indices are unique by construction. The traversal always
// terminates: documents are trees, not graphs, so no cycle detection is
// needed.
func Flatten(value any, prefix, separator string) model.FlatView {
	fv := make(model.FlatView)
	walk(value, prefix, separator, fv)
	return fv
}

// walk performs the recursive traversal, recording leaves into fv.
func walk(value any, prefix, separator string, fv model.FlatView) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			walk(child, join(prefix, key, separator), separator, fv)
		}
	case []any:
		for i, child := range v {
			walk(child, join(prefix, strconv.Itoa(i), separator), separator, fv)
		}
	default:
		// Scalar leaf, including null. A scalar at the top level is
		// recorded under the empty path.
		fv[prefix] = value
	}
}

// join appends one traversal step to a path prefix.
func join(prefix, step, separator string) string {
	if prefix == "" {
		return step
	}
	return prefix + separator + step
}
