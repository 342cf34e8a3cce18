// Package log provides structured logging setup for keydiff.
//
// The comparison pipeline logs leaf values at debug level, and the
// configuration and localization files keydiff compares routinely hold
// credentials (API keys, connection strings, tokens). MaskingHandler
// wraps an slog.Handler and redacts attribute values that look sensitive
// before they reach the log output.
package log
