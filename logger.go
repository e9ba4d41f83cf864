package hew

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with hew-specific field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at Info level.
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

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger returns a logger that discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a slog level.
// Unknown names yield Info and false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRead logs loading a dataset.
func (l *Logger) LogRead(ctx context.Context, path string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "dataset loaded",
		"path", path,
		"rows", rows,
	)
}

// LogFit logs the outcome of a clustering run.
func (l *Logger) LogFit(ctx context.Context, k, iterations int, converged bool, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"k", k,
			"error", err,
		)
		return
	}
	if !converged {
		l.WarnContext(ctx, "fit stopped at iteration cap",
			"k", k,
			"iterations", iterations,
			"elapsed", elapsed,
		)
		return
	}
	l.InfoContext(ctx, "fit completed",
		"k", k,
		"iterations", iterations,
		"elapsed", elapsed,
	)
}

// LogSelection logs the result of choosing k with the gap statistic.
func (l *Logger) LogSelection(ctx context.Context, maxK, bootstrap, k int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "k selection failed",
			"max_k", maxK,
			"bootstrap", bootstrap,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "k selected",
		"max_k", maxK,
		"bootstrap", bootstrap,
		"k", k,
	)
}

// LogWrite logs writing the labelled output.
func (l *Logger) LogWrite(ctx context.Context, path string, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "results written",
		"path", path,
		"rows", rows,
	)
}
