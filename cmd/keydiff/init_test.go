package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestRunInit tests configuration file scaffolding.
func TestRunInit(t *testing.T) {
	t.Parallel()

	t.Run("creates a configuration file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".keydiff")

		stdout, _, err := runCommand(t, "init", "-o", path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Created configuration file: "+path) {
			t.Errorf("unexpected output: %s", stdout)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read config file: %v", err)
		}

		// The template is commented examples, but must still parse as YAML.
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			t.Errorf("generated config is not valid YAML: %v", err)
		}
		for _, keyword := range []string{"separator", "output", "format", "save"} {
			if !strings.Contains(string(data), keyword) {
				t.Errorf("generated config missing %q section", keyword)
			}
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".keydiff", "separator: /\n")

		_, _, err := runCommand(t, "init", "-o", path)
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected already-exists error, got %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "separator: /\n" {
			t.Error("existing file was modified")
		}
	})

	t.Run("force overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), ".keydiff", "separator: /\n")

		if _, _, err := runCommand(t, "init", "-o", path, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read config file: %v", err)
		}
		if string(data) == "separator: /\n" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "configs", "team", ".keydiff")

		if _, _, err := runCommand(t, "init", "-o", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected config file in nested directory: %v", err)
		}
	})
}
