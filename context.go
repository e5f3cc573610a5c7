package logdispatch

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// WithContext returns a new context carrying the logger.
func WithContext(ctx context.Context, log *Logger) context.Context {
	return context.WithValue(ctx, contextKey, log)
}

// FromContext retrieves the logger from the context. If no logger is found a
// new logger without backends is returned, changes to it are not shared with
// other callers.
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if log, ok := ctx.Value(contextKey).(*Logger); ok && log != nil {
			return log
		}
	}
	return newNullLogger()
}

// newNullLogger creates a logger without backends, all dispatch calls are
// no-ops until a backend gets registered.
func newNullLogger() *Logger {
	return New(WithDiagnostics(hclog.NewNullLogger()))
}

type contextKeyType struct{}

var contextKey = contextKeyType{}
