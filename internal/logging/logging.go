// Package logging carries request-scoped slog loggers through contexts.
// The HTTP middleware attaches a logger enriched with request attributes,
// and the booking, room, and auth services pick it up again so their log
// lines correlate with the request that triggered them.
package logging

import (
	"context"
	"log/slog"
)

// loggerKey is unexported so only this package can place loggers in a
// context.
type loggerKey struct{}

// ContextWithLogger attaches logger to the context. A nil context or nil
// logger leaves the context unchanged.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, or nil when none was
// attached. Callers fall back to their own default logger on nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(loggerKey{}).(*slog.Logger)
	return logger
}
