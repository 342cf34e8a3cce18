package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".keydiff"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File holds the options a .keydiff configuration file can set.
// Every field is optional; unset fields leave the built-in defaults in
// place.
type File struct {
	// Separator joins path segments in flattened keys.
	Separator string `yaml:"separator,omitempty"`

	// Output is the default report destination path.
	Output string `yaml:"output,omitempty"`

	// Format selects the default report format: "json" or "markdown".
	Format string `yaml:"format,omitempty"`

	// Save persists every comparison to the history database.
	Save bool `yaml:"save,omitempty"`
}

// LoadConfigFile loads options from a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should treat that as fatal only when the path was explicitly given by
// the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .keydiff in the current directory
// 3. Look for .keydiff in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
