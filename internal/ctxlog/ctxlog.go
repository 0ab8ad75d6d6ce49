// Package ctxlog provides a context key for safely passing a slog.Logger
// instance through context.Context, along with the attribute keys used to
// attribute build output to a resource and a step.
package ctxlog

import (
	"context"
	"log/slog"
)

// Attribute keys understood by the console handler. Records carrying them are
// rendered with a "[resource/step]" prefix instead of key=value pairs.
const (
	ResourceKey = "resource"
	StepKey     = "step"
	OKKey       = "ok"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// loggerKey is the key for the slog.Logger in a context.Context.
var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. A context without a
// logger is a wiring bug, so it panics rather than silently logging elsewhere.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	panic("ctxlog: logger missing from context")
}

// With scopes the context logger with additional attributes and returns the
// derived context together with the scoped logger.
func With(ctx context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := FromContext(ctx).With(args...)
	return WithLogger(ctx, logger), logger
}

// OK logs a success line. Handlers other than the console handler see it as
// an ordinary info record with ok=true.
func OK(logger *slog.Logger, msg string, args ...any) {
	logger.Info(msg, append([]any{OKKey, true}, args...)...)
}
