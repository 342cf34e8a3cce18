package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/keydiff/keydiff/internal/config"
	"github.com/keydiff/keydiff/internal/database"
	"github.com/keydiff/keydiff/internal/diff"
	"github.com/keydiff/keydiff/internal/document"
	"github.com/keydiff/keydiff/internal/flatten"
	"github.com/keydiff/keydiff/internal/model"
	"github.com/keydiff/keydiff/internal/report"
)

// CheckInputsStep verifies that both input paths reference existing
// regular files before anything is parsed. Running this as the first
// step guarantees a missing second file never leaves a half-done run.
type CheckInputsStep struct{}

// NewCheckInputsStep creates the input existence check step.
func NewCheckInputsStep() *CheckInputsStep {
	return &CheckInputsStep{}
}

// Name returns the step name.
func (s *CheckInputsStep) Name() string { return "check-inputs" }

// Do stats both input files.
func (s *CheckInputsStep) Do(_ context.Context, run *Run) error {
	if err := document.CheckFile(run.FileA); err != nil {
		return err
	}
	return document.CheckFile(run.FileB)
}

// LoadStep parses both input files into documents and assigns the
// report labels.
type LoadStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewLoadStep creates the document loading step.
func NewLoadStep(logger *slog.Logger) *LoadStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoadStep{logger: logger}
}

// Name returns the step name.
func (s *LoadStep) Name() string { return "load-documents" }

// Do loads both documents into the run.
func (s *LoadStep) Do(_ context.Context, run *Run) error {
	docA, err := document.Load(run.FileA)
	if err != nil {
		return err
	}
	docB, err := document.Load(run.FileB)
	if err != nil {
		return err
	}

	docA.Label, docB.Label = document.Labels(run.FileA, run.FileB)
	run.DocA = docA
	run.DocB = docB

	s.logger.Debug("documents loaded",
		"file_a", run.FileA,
		"kind_a", model.KindOf(docA.Value).String(),
		"file_b", run.FileB,
		"kind_b", model.KindOf(docB.Value).String(),
	)
	return nil
}

// FlattenStep converts both documents into flat path-to-leaf views.
type FlattenStep struct {
	// separator joins path segments in flattened keys.
	separator string

	// logger for structured logging.
	logger *slog.Logger
}

// NewFlattenStep creates the flattening step.
func NewFlattenStep(separator string, logger *slog.Logger) *FlattenStep {
	if separator == "" {
		separator = config.DefaultSeparator
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FlattenStep{separator: separator, logger: logger}
}

// Name returns the step name.
func (s *FlattenStep) Name() string { return "flatten" }

// Do flattens both documents.
func (s *FlattenStep) Do(_ context.Context, run *Run) error {
	run.FlatA = flatten.Flatten(run.DocA.Value, "", s.separator)
	run.FlatB = flatten.Flatten(run.DocB.Value, "", s.separator)

	s.logger.Debug("documents flattened",
		"leaves_a", run.FlatA.Len(),
		"leaves_b", run.FlatB.Len(),
		"separator", s.separator,
	)
	return nil
}

// CompareStep computes the comparison report from the two flat views.
type CompareStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// NewCompareStep creates the comparison step.
func NewCompareStep(logger *slog.Logger) *CompareStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompareStep{logger: logger}
}

// Name returns the step name.
func (s *CompareStep) Name() string { return "compare" }

// Do computes the four-way partition.
func (s *CompareStep) Do(_ context.Context, run *Run) error {
	run.Report = diff.Compare(run.FlatA, run.FlatB, run.DocA.Label, run.DocB.Label)

	summary := run.Report.Summary()
	s.logger.Debug("comparison computed",
		"only_in_a", summary.OnlyInA,
		"only_in_b", summary.OnlyInB,
		"differing", summary.Differing,
		"identical", summary.Identical,
	)
	return nil
}

// PersistStep saves the comparison result to the history database.
type PersistStep struct {
	// db is the history database. The step is only added to the
	// pipeline when persistence was requested, so db is never nil.
	db *database.HistoryDB

	// logger for structured logging.
	logger *slog.Logger
}

// NewPersistStep creates the history persistence step.
func NewPersistStep(db *database.HistoryDB, logger *slog.Logger) *PersistStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersistStep{db: db, logger: logger}
}

// Name returns the step name.
func (s *PersistStep) Name() string { return "persist-history" }

// Do saves the report and records the assigned run ID.
func (s *PersistStep) Do(ctx context.Context, run *Run) error {
	id, err := s.db.SaveComparison(ctx, run.Report, run.FileA, run.FileB)
	if err != nil {
		return fmt.Errorf("failed to save comparison to history: %w", err)
	}
	run.HistoryID = id

	s.logger.Debug("comparison saved", "history_id", id)
	return nil
}

// WriteReportStep serializes the report to its destination: the
// configured output file, or stdout when requested.
type WriteReportStep struct {
	// cfg supplies the output path and format selection.
	cfg *config.Config

	// stdout is the destination for --stdout output. Injected so tests
	// can capture it.
	stdout io.Writer
}

// NewWriteReportStep creates the report writing step.
// If stdout is nil, os.Stdout is used.
func NewWriteReportStep(cfg *config.Config, stdout io.Writer) *WriteReportStep {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &WriteReportStep{cfg: cfg, stdout: stdout}
}

// Name returns the step name.
func (s *WriteReportStep) Name() string { return "write-report" }

// Do writes the report.
func (s *WriteReportStep) Do(_ context.Context, run *Run) error {
	if s.cfg.WriteToStdout {
		return s.write(run, s.stdout)
	}

	outputPath := run.OutputPath
	if outputPath == "" {
		outputPath = s.cfg.OutputFile
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(outputPath) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := s.write(run, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to finalize output file: %w", err)
	}

	run.OutputPath = outputPath
	return nil
}

// write serializes the report in the configured format.
func (s *WriteReportStep) write(run *Run, out io.Writer) error {
	var w report.Writer
	if s.cfg.MarkdownReport {
		w = report.NewMarkdownWriter(out)
	} else {
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	}

	if _, err := w.Write(run.Report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
