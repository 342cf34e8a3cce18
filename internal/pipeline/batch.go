package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pair is one batch manifest entry: two files to compare and an
// optional per-pair output path.
type Pair struct {
	// A and B are the input file paths.
	A string `yaml:"a"`
	B string `yaml:"b"`

	// Output overrides the report destination for this pair. When
	// empty, the batch processor derives a destination from the pair's
	// position in the manifest.
	Output string `yaml:"output,omitempty"`
}

// BatchResult holds the outcome of one pair in a batch run.
type BatchResult struct {
	// Pair is the manifest entry that produced this result.
	Pair Pair

	// Run holds the completed run state; nil when the run failed before
	// producing anything.
	Run *Run

	// Err is the failure, if any. A failed pair does not abort the
	// other pairs in the batch.
	Err error
}

// BatchProcessor runs many independent comparisons concurrently.
// Each comparison itself stays synchronous; only whole pairs run in
// parallel, with errgroup enforcing the concurrency limit.
type BatchProcessor struct {
	// pipelineFactory creates a fresh pipeline per pair so state never
	// leaks between runs.
	pipelineFactory func() *Pipeline

	// concurrency is the maximum number of concurrent comparisons.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed runs, ordered like the input pairs.
	// Access is synchronized via mutex.
	results []BatchResult
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent comparisons.
// Non-positive values leave the default in place.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor.
// The pipelineFactory is called once per pair.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch compares all pairs, at most `concurrency` at a time.
// Results are returned for every pair in manifest order, with per-pair
// errors recorded in the result rather than aborting the batch. The
// returned error is non-nil only when the batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, pairs []Pair) ([]BatchResult, error) {
	bp.logger.Debug("starting batch processing",
		"total_pairs", len(pairs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	bp.results = make([]BatchResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, pair := range pairs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Debug("comparing pair",
				"file_a", pair.A,
				"file_b", pair.B,
				"index", i+1,
				"total", len(pairs),
			)

			run := &Run{
				FileA:      pair.A,
				FileB:      pair.B,
				OutputPath: pair.Output,
			}

			err := bp.pipelineFactory().Execute(ctx, run)

			bp.mu.Lock()
			bp.results[i] = BatchResult{Pair: pair, Run: run, Err: err}
			bp.mu.Unlock()

			if err != nil {
				bp.logger.Warn("comparison failed",
					"file_a", pair.A,
					"file_b", pair.B,
					"error", err,
				)
			}
			// Per-pair failures are recorded in the result; only
			// cancellation aborts the batch.
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch processing complete",
		"total_pairs", len(pairs),
		"duration", time.Since(startTime),
	)

	return bp.results, err
}
