package logger

import (
	"context"
	"log/slog"
)

// Logger is the printf-style logger passed through the pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	// Slog exposes the underlying structured logger for HTTP middleware.
	Slog() *slog.Logger
}
