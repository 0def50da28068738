// Package observability provides structured diagnostic logging.
//
// Logger wraps log/slog with a persistent application context field.
// It carries the tracker's internal diagnostics (store loads, saves,
// backend selection); user-facing command output stays on stdout and
// never goes through here.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog with a persistent app name field.
type Logger struct {
	inner *slog.Logger
	app   string
}

// NewLogger creates a structured JSON logger for the named application.
// Output defaults to os.Stderr if w is nil; pass io.Discard to silence
// diagnostics entirely.
func NewLogger(app string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return &Logger{
		inner: slog.New(handler),
		app:   app,
	}
}

// With returns a new Logger with an additional persistent field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{
		inner: l.inner.With(slog.Any(key, value)),
		app:   l.app,
	}
}

// attrs prepends the app name to the arguments.
func (l *Logger) attrs(args []any) []any {
	return append([]any{slog.String("app", l.app)}, args...)
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	l.inner.Debug(msg, l.attrs(args)...)
}

// Info logs at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, l.attrs(args)...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	l.inner.Warn(msg, l.attrs(args)...)
}

// Error logs at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.inner.Error(msg, l.attrs(args)...)
}

// StoreEvent logs a store operation with its path and record count.
func (l *Logger) StoreEvent(op, path string, count int, args ...any) {
	allArgs := append([]any{
		slog.String("app", l.app),
		slog.String("op", op),
		slog.String("path", path),
		slog.Int("records", count),
	}, args...)
	l.inner.Debug("store", allArgs...)
}

// AppName returns the application name associated with this logger.
func (l *Logger) AppName() string {
	return l.app
}
