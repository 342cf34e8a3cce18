package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/keydiff/keydiff/internal/model"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown.
// This format is designed for documentation and review: drift between
// two configuration files rendered as tables and lists that read well in
// a pull request or wiki page.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ComparisonReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeOnlyIn(md, report.LabelA, report.OnlyInA)
	w.writeOnlyIn(md, report.LabelB, report.OnlyInB)
	w.writeDiffering(md, report)
	w.writeIdentical(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and the partition summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ComparisonReport) {
	md.H1("Key Comparison Report")
	md.PlainText("")

	summary := report.Summary()
	md.Table(markdown.TableSet{
		Header: []string{"Partition", "Count"},
		Rows: [][]string{
			{"Only in `" + report.LabelA + "`", strconv.Itoa(summary.OnlyInA)},
			{"Only in `" + report.LabelB + "`", strconv.Itoa(summary.OnlyInB)},
			{"Differing values", strconv.Itoa(summary.Differing)},
			{"Identical", strconv.Itoa(summary.Identical)},
			{"Total keys", strconv.Itoa(summary.Total())},
		},
	})
	md.PlainText("")

	if report.InSync() {
		md.Tip("The two documents are in sync: every key is present in both with identical values.")
		md.PlainText("")
	}
}

// writeOnlyIn writes the section listing keys present in only one document.
func (w *MarkdownWriter) writeOnlyIn(md *markdown.Markdown, label string, paths []string) {
	md.H2("Only in `" + label + "`")
	if len(paths) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	items := make([]string, len(paths))
	for i, p := range paths {
		items[i] = "`" + p + "`"
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeDiffering writes the table of keys whose values differ.
func (w *MarkdownWriter) writeDiffering(md *markdown.Markdown, report *model.ComparisonReport) {
	md.H2("Differing Values")
	if len(report.Differing) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Differing))
	for i, d := range report.Differing {
		rows[i] = []string{
			"`" + d.Key + "`",
			formatLeaf(d.ValueA),
			formatLeaf(d.ValueB),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Key", report.LabelA, report.LabelB},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeIdentical writes the section for keys present in both documents
// with equal values. Only the count and the key list are shown; the
// values themselves add no information when they match.
func (w *MarkdownWriter) writeIdentical(md *markdown.Markdown, report *model.ComparisonReport) {
	md.H2(fmt.Sprintf("Identical (%d)", len(report.Identical)))
	if len(report.Identical) == 0 {
		md.PlainText("None.")
		return
	}

	items := make([]string, len(report.Identical))
	for i, p := range report.Identical {
		items[i] = "`" + p + "`"
	}
	md.BulletList(items...)
}

// formatLeaf renders a leaf value for display. JSON encoding keeps the
// type visible: strings stay quoted so `"1"` and `1` look different.
func formatLeaf(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return "`" + string(data) + "`"
}
