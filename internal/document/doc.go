// Package document loads input files into parsed document trees.
//
// Inputs are small configuration or localization files, read fully into
// memory before parsing. The format is selected by file extension:
// .yaml and .yml parse as YAML, everything else as JSON. Both formats
// decode into the same tree shape (map[string]any, []any, scalars) so
// the rest of the pipeline never sees format differences.
package document
