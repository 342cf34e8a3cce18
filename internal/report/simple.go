package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/keydiff/keydiff/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// Plain text with ASCII formatting works in all terminals and pipes
// cleanly to files or other tools.
type SimpleWriter struct {
	baseWriter

	// showIdentical controls whether the identical-keys section lists
	// every key or only the count.
	showIdentical bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowIdentical lists every identical key instead of just the count.
func WithShowIdentical(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showIdentical = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable text format.
func (w *SimpleWriter) Write(report *model.ComparisonReport) (int, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Comparison: %s vs %s\n", report.LabelA, report.LabelB)
	b.WriteString(strings.Repeat("=", 60) + "\n")

	summary := report.Summary()
	fmt.Fprintf(&b, "\n  %-24s %d\n", "Only in "+report.LabelA+":", summary.OnlyInA)
	fmt.Fprintf(&b, "  %-24s %d\n", "Only in "+report.LabelB+":", summary.OnlyInB)
	fmt.Fprintf(&b, "  %-24s %d\n", "Differing values:", summary.Differing)
	fmt.Fprintf(&b, "  %-24s %d\n", "Identical:", summary.Identical)
	fmt.Fprintf(&b, "  %-24s %d\n", "Total keys:", summary.Total())

	if report.InSync() {
		b.WriteString("\nDocuments are in sync.\n")
		return w.output.Write([]byte(b.String()))
	}

	if len(report.OnlyInA) > 0 {
		fmt.Fprintf(&b, "\nOnly in %s (%d):\n", report.LabelA, len(report.OnlyInA))
		for _, p := range report.OnlyInA {
			fmt.Fprintf(&b, "  [-] %s\n", p)
		}
	}

	if len(report.OnlyInB) > 0 {
		fmt.Fprintf(&b, "\nOnly in %s (%d):\n", report.LabelB, len(report.OnlyInB))
		for _, p := range report.OnlyInB {
			fmt.Fprintf(&b, "  [+] %s\n", p)
		}
	}

	if len(report.Differing) > 0 {
		fmt.Fprintf(&b, "\nDiffering values (%d):\n", len(report.Differing))
		for _, d := range report.Differing {
			fmt.Fprintf(&b, "  [~] %s: %s -> %s\n", d.Key, renderLeaf(d.ValueA), renderLeaf(d.ValueB))
		}
	}

	if w.showIdentical && len(report.Identical) > 0 {
		fmt.Fprintf(&b, "\nIdentical (%d):\n", len(report.Identical))
		for _, p := range report.Identical {
			fmt.Fprintf(&b, "  [=] %s\n", p)
		}
	}

	return w.output.Write([]byte(b.String()))
}

// renderLeaf renders a leaf value with its type visible, so the string
// "1" and the number 1 read differently in terminal output.
func renderLeaf(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
