// Package logger provides structured logging for featherserve.
//
// It wraps the standard library log/slog:
//
//   - logger.go: handler construction, level control and the global default
//   - context.go: context-aware logging with connection IDs
//   - redact.go: secret redaction and sanitizing of client-supplied values
//
// Request paths and peer addresses come straight from the network, so they
// are escaped and truncated before they reach a log sink.
package logger
