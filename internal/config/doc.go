// Package config holds runtime configuration for keydiff.
//
// Configuration comes from three layers: built-in defaults, an optional
// .keydiff YAML file (current directory, then home directory), and CLI
// flags. Flags win over file values, file values win over defaults. The
// resolved Config is passed through the application explicitly rather
// than via global state.
package config
