package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keydiff/keydiff/internal/config"
	"github.com/keydiff/keydiff/internal/database"
	"github.com/keydiff/keydiff/internal/log"
	"github.com/keydiff/keydiff/internal/pipeline"
	"github.com/keydiff/keydiff/internal/report"
)

// NewRootCmd creates the root command for keydiff.
// The root command itself performs the comparison; subcommands cover
// batch runs, history, config scaffolding, and version info.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keydiff <fileA> <fileB>",
		Short: "Compare keys and values of two structured documents",
		Long: `keydiff compares two structured documents (JSON or YAML) by flattening
each into dotted key paths, then reports:
- keys present only in the first file
- keys present only in the second file
- keys present in both but with differing values
- keys present in both with identical values

The report is written as JSON (default) or Markdown. Sequence elements
are addressed by zero-based index, so "x.2" is the third element of the
sequence under key "x".

Examples:
  # Compare two files, writing differences.json
  keydiff en.json zh.json

  # Custom output path
  keydiff en.json zh.json -o drift.json

  # Markdown report for review
  keydiff prod.yaml staging.yaml --markdown -o drift.md

  # Print the report to stdout instead of a file
  keydiff a.json b.json --stdout

  # Save the run to the history database
  keydiff a.json b.json --save`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ExactArgs(2),
		RunE:          runDiffCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Comparison flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputFile,
		"Output file for differences (JSON format)")
	cmd.Flags().StringP("separator", "s", config.DefaultSeparator,
		"Separator between nested key segments")
	cmd.Flags().BoolP("json", "j", false,
		"Write the report as JSON (default; mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write the report as Markdown (mutually exclusive with --json)")
	cmd.Flags().Bool("stdout", false,
		"Write the report to stdout instead of a file")
	cmd.Flags().Bool("summary", false,
		"Print a partition summary to stderr after writing the report")
	cmd.Flags().Bool("save", false,
		"Save the comparison to the history database")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .keydiff in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runDiffCmd executes the comparison between the two positional inputs.
func runDiffCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewCheckInputsStep(),
		pipeline.NewLoadStep(logger),
		pipeline.NewFlattenStep(cfg.Separator, logger),
		pipeline.NewCompareStep(logger),
	)

	var db *database.HistoryDB
	if cfg.Save {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		p.AddSteps(pipeline.NewPersistStep(db, logger))
	}

	p.AddSteps(pipeline.NewWriteReportStep(cfg, cmd.OutOrStdout()))

	run := &pipeline.Run{FileA: args[0], FileB: args[1]}
	if err := p.Execute(cmd.Context(), run); err != nil {
		return err
	}

	if !cfg.WriteToStdout {
		fmt.Fprintf(cmd.OutOrStdout(),
			"Differences (including value diffs) written to %s\n", run.OutputPath)
	}
	if cfg.Save {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved to history with ID %d\n", run.HistoryID)
	}

	if cfg.ShowSummary {
		w := report.NewSimpleWriter(cmd.ErrOrStderr())
		if _, err := w.Write(run.Report); err != nil {
			return fmt.Errorf("failed to print summary: %w", err)
		}
	}

	return nil
}

// resolveConfig builds the run configuration: defaults, overlaid with the
// .keydiff config file when one is found, overridden by CLI flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	if cfg.OutputFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Separator, err = cmd.Flags().GetString("separator"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.WriteToStdout, err = cmd.Flags().GetBool("stdout"); err != nil {
		return nil, err
	}
	if cfg.ShowSummary, err = cmd.Flags().GetBool("summary"); err != nil {
		return nil, err
	}
	if cfg.Save, err = cmd.Flags().GetBool("save"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// An explicitly requested config file must exist; an implicitly
	// discovered one is optional.
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg.ApplyFile(file)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
