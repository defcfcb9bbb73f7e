// Package logging wraps log/slog with the field names used across ndarray.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with ndarray-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that writes JSON-formatted logs to w.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that writes human-readable text logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithOp adds an operation field to the logger.
func (l *Logger) WithOp(op string) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", op),
	}
}

// WithMode adds an execution mode field to the logger.
func (l *Logger) WithMode(mode string) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", mode),
	}
}

// Dispatch describes how one operation is about to be executed.
type Dispatch struct {
	Op      string
	Mode    string // requested execution mode
	Kernel  string // "scalar" or "lanes"
	Shape   string
	DType   string
	Workers int // 1 when the operation stays on the caller
}

// LogDispatch records the kernel chosen for an operation.
func (l *Logger) LogDispatch(ctx context.Context, d Dispatch) {
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "dispatch",
		"op", d.Op,
		"mode", d.Mode,
		"kernel", d.Kernel,
		"shape", d.Shape,
		"dtype", d.DType,
		"workers", d.Workers,
	)
}

// LogAbort records a parallel run cut short by a worker error.
func (l *Logger) LogAbort(ctx context.Context, op string, workers int, err error) {
	l.DebugContext(ctx, "parallel run aborted",
		"op", op,
		"workers", workers,
		"error", err,
	)
}
