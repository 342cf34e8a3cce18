package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keydiff/keydiff/internal/config"
	"github.com/keydiff/keydiff/internal/database"
	"github.com/keydiff/keydiff/internal/model"
)

// NewHistoryCmd creates the history command.
// This command lists and displays comparisons saved with --save.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or display saved comparisons",
		Long: `History lists comparison runs previously saved with --save, or prints
the full stored report for a single run.

Examples:
  # List all saved comparisons
  keydiff history

  # Print the stored report for run 3
  keydiff history --show 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List all saved comparisons (the default when --show is not given)")
	cmd.Flags().Int64P("show", "i", 0,
		"Print the stored report for the run with this ID")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()

	if showID > 0 {
		reportJSON, err := db.GetReportJSON(ctx, showID)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(reportJSON))
		return nil
	}

	runs, err := db.ListComparisons(ctx)
	if err != nil {
		return fmt.Errorf("failed to list comparisons: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved comparisons found.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'keydiff <fileA> <fileB> --save' to save a comparison.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved comparisons (%d):\n\n", len(runs))
	fmt.Fprintf(cmd.OutOrStdout(), "  %-6s  %-20s  %-40s  %s\n", "ID", "Date", "Files", "Result")
	fmt.Fprintln(cmd.OutOrStdout(), "  "+strings.Repeat("-", 90))

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-6d  %-20s  %-40s  %s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.FileA+" vs "+run.FileB,
			formatRunSummary(run.Summary),
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nUse 'keydiff history --show <id>' to print a stored report.")
	return nil
}

// formatRunSummary formats partition counts into a compact column value.
func formatRunSummary(s model.Summary) string {
	if s.Total() == s.Identical {
		return "in sync"
	}

	var parts []string
	if s.OnlyInA > 0 {
		parts = append(parts, fmt.Sprintf("-%d", s.OnlyInA))
	}
	if s.OnlyInB > 0 {
		parts = append(parts, fmt.Sprintf("+%d", s.OnlyInB))
	}
	if s.Differing > 0 {
		parts = append(parts, fmt.Sprintf("~%d", s.Differing))
	}
	parts = append(parts, fmt.Sprintf("=%d", s.Identical))

	return strings.Join(parts, " ")
}
