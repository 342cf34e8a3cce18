package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultSeparator joins path segments in flattened keys. A dot is
	// the conventional separator for nested configuration keys.
	DefaultSeparator = "."

	// DefaultOutputFile is where the comparison report is written when
	// no --output flag is given.
	DefaultOutputFile = "differences.json"

	// DefaultConcurrency is the number of comparisons a batch run
	// executes at once. Comparisons are short-lived and CPU-light, so a
	// small limit keeps file-descriptor use predictable without
	// noticeably slowing large manifests.
	DefaultConcurrency = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "keydiff"
)

// Report format names accepted by the config file and flags.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all options for a comparison run. It is populated from
// CLI flags (optionally overlaid on a .keydiff config file) and passed
// through the pipeline via dependency injection.
type Config struct {
	// Separator joins path segments in flattened keys.
	Separator string

	// OutputFile is the report destination path.
	OutputFile string

	// JSONReport forces JSON report output. This is the default format;
	// the flag exists so callers can be explicit and so conflicting
	// format requests can be rejected. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport writes the report in Markdown instead of JSON.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// WriteToStdout writes the report to standard output instead of
	// OutputFile. The success confirmation line is suppressed because
	// stdout carries the report itself.
	WriteToStdout bool

	// ShowSummary prints a short partition summary to stderr after the
	// report is written.
	ShowSummary bool

	// Save persists the comparison result to the history database.
	Save bool

	// DBDir is the directory holding the history database. Defaults to
	// the XDG data directory.
	DBDir string

	// Concurrency is the number of concurrent comparisons in batch mode.
	Concurrency int

	// Verbose enables slog.LevelDebug output on stderr.
	Verbose bool

	// ConfigFilePath is an explicit .keydiff config file path. Empty
	// means search the current directory and then the home directory.
	ConfigFilePath string
}

// NewConfig creates a Config with default values. Defaults are non-zero
// (separator, output path, concurrency), so relying on zero values would
// produce a broken configuration.
func NewConfig() *Config {
	return &Config{
		Separator:   DefaultSeparator,
		OutputFile:  DefaultOutputFile,
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for keydiff.
// On Linux: ~/.local/share/keydiff
// On macOS: ~/Library/Application Support/keydiff
// On Windows: %LOCALAPPDATA%\keydiff
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
// It is called once after flag parsing, before any file is touched.
func (c *Config) Validate() error {
	if c.Separator == "" {
		return ErrEmptySeparator
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.OutputFile == "" && !c.WriteToStdout {
		return ErrNoOutput
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	return nil
}

// ApplyFile overlays values from a loaded config file onto c. Only
// fields left at their defaults are overwritten, so flag values given by
// the user always win.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if c.Separator == DefaultSeparator && f.Separator != "" {
		c.Separator = f.Separator
	}
	if c.OutputFile == DefaultOutputFile && f.Output != "" {
		c.OutputFile = f.Output
	}
	if !c.JSONReport && !c.MarkdownReport && f.Format == FormatMarkdown {
		c.MarkdownReport = true
	}
	if !c.Save && f.Save {
		c.Save = true
	}
}
