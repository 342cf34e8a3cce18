package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/keydiff/keydiff/internal/config"
	"github.com/keydiff/keydiff/internal/log"
	"github.com/keydiff/keydiff/internal/pipeline"
)

// NewBatchCmd creates the batch command.
// Batch mode compares many file pairs listed in a YAML manifest.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <manifest>",
		Short: "Compare multiple file pairs from a YAML manifest",
		Long: `Batch compares every file pair listed in a YAML manifest and writes
one report per pair. Pairs are processed concurrently; each individual
comparison is still a single synchronous pass.

Manifest format:
  pairs:
    - a: config/en.json
      b: config/zh.json
      output: reports/en-zh.json
    - a: prod.yaml
      b: staging.yaml

Pairs without an explicit output get differences_<n>.json, numbered by
manifest position.

Examples:
  # Compare all pairs in the manifest
  keydiff batch pairs.yaml

  # Limit concurrency
  keydiff batch pairs.yaml --concurrency 2

  # Markdown reports for every pair
  keydiff batch pairs.yaml --markdown`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of concurrent comparisons")
	cmd.Flags().StringP("separator", "s", config.DefaultSeparator,
		"Separator between nested key segments")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write reports as Markdown instead of JSON")

	return cmd
}

// batchManifest is the YAML shape of a batch manifest file.
type batchManifest struct {
	Pairs []pipeline.Pair `yaml:"pairs"`
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}
	separator, err := cmd.Flags().GetString("separator")
	if err != nil {
		return err
	}
	markdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	verbose := getVerboseFlag(cmd)

	cfg := config.NewConfig()
	cfg.Separator = separator
	cfg.MarkdownReport = markdown
	cfg.Concurrency = concurrency
	cfg.Verbose = verbose
	if err := cfg.Validate(); err != nil {
		return err
	}

	pairs, err := loadManifest(args[0])
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("manifest %s contains no pairs", args[0])
	}

	// Number the default outputs by manifest position so concurrent
	// pairs never write to the same file.
	ext := "json"
	if markdown {
		ext = "md"
	}
	for i := range pairs {
		if pairs[i].Output == "" {
			pairs[i].Output = fmt.Sprintf("differences_%d.%s", i+1, ext)
		}
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), verbose)
	factory := func() *pipeline.Pipeline {
		p := pipeline.New(pipeline.WithLogger(logger))
		p.AddSteps(
			pipeline.NewCheckInputsStep(),
			pipeline.NewLoadStep(logger),
			pipeline.NewFlattenStep(cfg.Separator, logger),
			pipeline.NewCompareStep(logger),
			pipeline.NewWriteReportStep(cfg, cmd.OutOrStdout()),
		)
		return p
	}

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithBatchLogger(logger),
		pipeline.WithConcurrency(cfg.Concurrency),
	)

	results, err := bp.ProcessBatch(cmd.Context(), pairs)
	if err != nil {
		return err
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s vs %s: %v\n", r.Pair.A, r.Pair.B, r.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Differences (including value diffs) written to %s\n", r.Run.OutputPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d comparisons failed", failed, len(results))
	}
	return nil
}

// loadManifest reads and parses a batch manifest file.
func loadManifest(path string) ([]pipeline.Pair, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided manifest path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m batchManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	for i, p := range m.Pairs {
		if p.A == "" || p.B == "" {
			return nil, fmt.Errorf("manifest pair %d is missing 'a' or 'b'", i+1)
		}
	}

	return m.Pairs, nil
}
