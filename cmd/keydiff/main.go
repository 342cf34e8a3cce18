// Package main provides the entry point for the keydiff CLI.
//
// keydiff compares the keys and values of two structured documents
// (JSON or YAML) by flattening each into dotted key paths, and reports
// which keys exist in only one file, which differ in value, and which
// are identical. It is meant for spotting drift between two versions of
// a configuration or localization file.
//
// Usage:
//
//	keydiff <fileA> <fileB>
//	keydiff <fileA> <fileB> -o differences.json
//
// See --help for all available options.
package main

// main is the entry point for keydiff.
func main() {
	Execute()
}
