package model

import (
	"reflect"
	"testing"
)

// TestKindOf tests shape classification of document values.
func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{name: "mapping", value: map[string]any{"a": 1}, want: KindMapping},
		{name: "empty mapping", value: map[string]any{}, want: KindMapping},
		{name: "sequence", value: []any{1, 2}, want: KindSequence},
		{name: "string", value: "x", want: KindScalar},
		{name: "number", value: float64(1), want: KindScalar},
		{name: "boolean", value: true, want: KindScalar},
		{name: "null", value: nil, want: KindScalar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := KindOf(tt.value); got != tt.want {
				t.Errorf("KindOf(%#v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

// TestKindString tests the kind names used in logs.
func TestKindString(t *testing.T) {
	t.Parallel()

	if KindMapping.String() != "mapping" {
		t.Errorf("KindMapping.String() = %q", KindMapping.String())
	}
	if KindSequence.String() != "sequence" {
		t.Errorf("KindSequence.String() = %q", KindSequence.String())
	}
	if KindScalar.String() != "scalar" {
		t.Errorf("KindScalar.String() = %q", KindScalar.String())
	}
}

// TestCountLeaves tests leaf counting over nested documents.
func TestCountLeaves(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  int
	}{
		{name: "scalar", value: "x", want: 1},
		{name: "null", value: nil, want: 1},
		{name: "empty mapping", value: map[string]any{}, want: 0},
		{name: "empty sequence", value: []any{}, want: 0},
		{
			name:  "nested",
			value: map[string]any{"a": float64(1), "b": map[string]any{"c": float64(2), "d": nil}},
			want:  3,
		},
		{
			name:  "sequence of mixed values",
			value: []any{float64(1), []any{float64(2)}, map[string]any{"k": "v"}, nil},
			want:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CountLeaves(tt.value); got != tt.want {
				t.Errorf("CountLeaves(%#v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

// TestFlatViewPaths tests sorted path listing.
func TestFlatViewPaths(t *testing.T) {
	t.Parallel()

	fv := FlatView{"z": 1, "a": 2, "m.n": 3}

	got := fv.Paths()
	want := []string{"a", "m.n", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	if fv.Len() != 3 {
		t.Errorf("Len() = %d, want 3", fv.Len())
	}

	t.Run("empty view", func(t *testing.T) {
		t.Parallel()

		empty := FlatView{}
		if len(empty.Paths()) != 0 {
			t.Errorf("expected no paths, got %v", empty.Paths())
		}
	})
}
