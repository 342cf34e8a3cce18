package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/keydiff/keydiff/internal/model"
)

// CheckFile verifies that path references an existing regular file.
// It returns an error wrapping ErrNotFound otherwise. The caller is
// expected to check both inputs before parsing either, so a missing
// second file never produces a partially parsed run.
func CheckFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNotFound, path)
	}
	return nil
}

// Load reads and parses the file at path into a Document.
//
// Numeric leaves are normalized to float64 regardless of input format,
// so integer 1 and float 1.0 compare as identical downstream. This keeps
// equality consistent between JSON (where encoding/json already decodes
// every number as float64) and YAML (where the decoder distinguishes
// int from float).
func Load(path string) (*model.Document, error) {
	if err := CheckFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var value any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("failed to parse %s as YAML: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &value); err != nil {
			return nil, fmt.Errorf("failed to parse %s as JSON: %w", path, err)
		}
	}

	return &model.Document{
		Path:  path,
		Label: filepath.Base(path),
		Value: normalize(value),
	}, nil
}

// Labels returns the report labels for a pair of input paths.
// Labels are basenames, falling back to the cleaned full paths when the
// basenames collide (the serialized report uses labels as field names,
// which must stay distinct).
func Labels(pathA, pathB string) (string, string) {
	labelA := filepath.Base(pathA)
	labelB := filepath.Base(pathB)
	if labelA == labelB {
		return filepath.Clean(pathA), filepath.Clean(pathB)
	}
	return labelA, labelB
}

// normalize rewrites a parsed tree into the canonical document shape:
// map[string]any mappings, []any sequences, and float64 numbers.
// YAML decodes integers as int and may produce map[any]any for
// non-string keys; both are converted here so the flattener and differ
// only ever see one representation.
func normalize(value any) any {
	switch v := value.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for key, child := range v {
			m[key] = normalize(child)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, child := range v {
			m[fmt.Sprint(key)] = normalize(child)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, child := range v {
			s[i] = normalize(child)
		}
		return s
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}
