package document

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeFile creates a test input file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

// TestCheckFile tests the pre-parse existence check.
func TestCheckFile(t *testing.T) {
	t.Parallel()

	t.Run("existing regular file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.json", `{}`)
		if err := CheckFile(path); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		err := CheckFile(filepath.Join(t.TempDir(), "nope.json"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("directory is not a regular file", func(t *testing.T) {
		t.Parallel()

		err := CheckFile(t.TempDir())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

// TestLoad tests parsing of input documents.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("json mapping", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.json", `{"a": 1, "b": {"c": "x"}}`)
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[string]any{"a": float64(1), "b": map[string]any{"c": "x"}}
		if !reflect.DeepEqual(doc.Value, want) {
			t.Errorf("Value = %#v, want %#v", doc.Value, want)
		}
		if doc.Label != "a.json" {
			t.Errorf("Label = %q, want a.json", doc.Label)
		}
	})

	t.Run("json top-level scalar", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.json", `42`)
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(doc.Value, float64(42)) {
			t.Errorf("Value = %#v, want 42", doc.Value)
		}
	})

	t.Run("yaml mapping with integer normalization", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.yaml", "a: 1\nb:\n  c: true\n  d: null\n")
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[string]any{
			"a": float64(1),
			"b": map[string]any{"c": true, "d": nil},
		}
		if !reflect.DeepEqual(doc.Value, want) {
			t.Errorf("Value = %#v, want %#v", doc.Value, want)
		}
	})

	t.Run("yaml sequence elements are normalized", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "a.yml", "items:\n  - 1\n  - 2.5\n  - x\n")
		doc, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := map[string]any{"items": []any{float64(1), float64(2.5), "x"}}
		if !reflect.DeepEqual(doc.Value, want) {
			t.Errorf("Value = %#v, want %#v", doc.Value, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "bad.json", `{"a": `)
		_, err := Load(path)
		if err == nil {
			t.Fatal("expected parse error")
		}
		if errors.Is(err, ErrNotFound) {
			t.Error("parse failure must not look like a missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "bad.yaml", "a: [1, 2\nb: }")
		if _, err := Load(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

// TestLabels tests report label derivation from input paths.
func TestLabels(t *testing.T) {
	t.Parallel()

	t.Run("distinct basenames", func(t *testing.T) {
		t.Parallel()

		labelA, labelB := Labels("data/en.json", "data/zh.json")
		if labelA != "en.json" || labelB != "zh.json" {
			t.Errorf("Labels() = %q, %q", labelA, labelB)
		}
	})

	t.Run("colliding basenames fall back to full paths", func(t *testing.T) {
		t.Parallel()

		labelA, labelB := Labels("prod/config.json", "staging/config.json")
		if labelA == labelB {
			t.Fatalf("labels must stay distinct, both are %q", labelA)
		}
		if labelA != filepath.Clean("prod/config.json") {
			t.Errorf("labelA = %q", labelA)
		}
		if labelB != filepath.Clean("staging/config.json") {
			t.Errorf("labelB = %q", labelB)
		}
	})
}
