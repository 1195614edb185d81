// Package logger carries the statement-logging surface of the executor.
//
// Every finalized statement is logged exactly once, after execution, with a
// fixed key set: "sql" (the rewritten statement text), "params" (the bound
// values after sanitizer masking), "duration_ms", "database" (driver name),
// and either "rows" on success or "error" on failure. Implementations
// receive these as alternating key-value pairs in args.
package logger

import "log/slog"

// Logger is the sink for executed-statement records. Levels follow slog
// conventions; the executor emits Info for successes and Error for failures.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NoopLogger discards all records. It is the default sink so that query
// logging costs nothing unless a logger is configured.
type NoopLogger struct{}

func (*NoopLogger) Debug(string, ...any) {}
func (*NoopLogger) Info(string, ...any)  {}
func (*NoopLogger) Warn(string, ...any)  {}
func (*NoopLogger) Error(string, ...any) {}

// SlogAdapter forwards statement records to a *slog.Logger, preserving the
// key-value pairs as slog attributes.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps an slog.Logger. The logger must not be nil; pass
// slog.Default() to log through the process-wide handler.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Debug(msg string, args ...any) { a.logger.Debug(msg, args...) }
func (a *SlogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *SlogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
func (a *SlogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }
