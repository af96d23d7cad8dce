package ngramgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with ngramgo-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithWord adds a word field to the logger.
func (l *Logger) WithWord(word string) *Logger {
	return &Logger{
		Logger: l.Logger.With("word", word),
	}
}

// WithPrefix adds a shard prefix field to the logger.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		Logger: l.Logger.With("prefix", prefix),
	}
}

// LogLookup logs a single-word lookup.
func (l *Logger) LogLookup(ctx context.Context, word string, found bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "lookup failed",
			"word", word,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "lookup completed",
			"word", word,
			"found", found,
		)
	}
}

// LogBatchLookup logs a batch lookup.
func (l *Logger) LogBatchLookup(ctx context.Context, total, found int) {
	l.DebugContext(ctx, "batch lookup completed",
		"words", total,
		"found", found,
	)
}
