// Package logging provides structured logging configuration using log/slog.
//
// Operations that span several store writes (a bulk upload, a declaration)
// carry an operation ID in their context; loggers obtained through
// FromContext include it in every entry so the steps of one operation can
// be correlated.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
//
// Use "json" format in production for machine parsing (ELK, CloudWatch, etc.)
// Use "text" format in development for human readability.
func Setup(level, format string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type contextKey struct{}

var operationIDKey contextKey

// WithOperationID stamps a fresh operation ID on the context.
func WithOperationID(ctx context.Context) context.Context {
	return context.WithValue(ctx, operationIDKey, uuid.NewString())
}

// OperationID returns the context's operation ID, or empty.
func OperationID(ctx context.Context) string {
	id, _ := ctx.Value(operationIDKey).(string)
	return id
}

// FromContext returns a logger enriched with the context's operation ID,
// when one is present.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()
	if id := OperationID(ctx); id != "" {
		logger = logger.With("operation_id", id)
	}
	return logger
}

// WithFields returns a logger with additional structured fields.
//
// This is useful for creating operation-specific loggers that carry
// consistent context through a multi-step process.
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
