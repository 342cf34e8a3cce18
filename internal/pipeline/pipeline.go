package pipeline

import (
	"context"
	"log/slog"

	"github.com/keydiff/keydiff/internal/model"
)

// Run accumulates the state of one comparison as it moves through the
// pipeline. Each step reads the fields earlier steps produced and fills
// in its own.
type Run struct {
	// FileA and FileB are the input file paths.
	FileA string
	FileB string

	// DocA and DocB are the loaded documents.
	DocA *model.Document
	DocB *model.Document

	// FlatA and FlatB are the flattened views of the documents.
	FlatA model.FlatView
	FlatB model.FlatView

	// Report is the computed comparison report.
	Report *model.ComparisonReport

	// OutputPath is where the report was written. Empty when the report
	// went to stdout.
	OutputPath string

	// HistoryID is the database ID of the saved run, when persistence
	// was requested.
	HistoryID int64
}

// Step is one stage of a comparison run.
// Steps execute in sequence; a step error aborts the run.
type Step interface {
	// Do executes the pipeline step, reading and updating the run state.
	Do(ctx context.Context, run *Run) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes an ordered list of steps against a Run.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline with the given options.
// Steps are added with AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline in execution order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all steps in sequence, stopping at the first error.
// Cancellation is checked between steps; steps themselves are short and
// non-blocking.
func (p *Pipeline) Execute(ctx context.Context, run *Run) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"file_a", run.FileA,
			"file_b", run.FileB,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)
			return err
		}
	}

	return nil
}
