// Package report provides comparison report output in multiple formats.
//
// Writers implement the Writer interface so formats are interchangeable
// and composable:
//   - JSONWriter: the canonical report format for tool integration
//   - MarkdownWriter: GitHub-flavored Markdown for documentation and review
//   - SimpleWriter: human-readable text summary for terminal display
//
// Report data structures live in the model package; this package only
// shapes them for output.
package report
