package mcp

import (
	"context"

	"github.com/google/uuid"
)

// correlationKey is the context key for a tool call's correlation ID.
type correlationKey struct{}

// WithCorrelationID returns a context carrying a correlation ID. An ID
// already on ctx is reused.
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	if id, ok := CorrelationID(ctx); ok {
		return ctx, id
	}
	id := uuid.New().String()
	return context.WithValue(ctx, correlationKey{}, id), id
}

// ContextWithCorrelationID attaches a known correlation ID, such as one taken
// from an HTTP request header.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID extracts the correlation ID from ctx, if present.
func CorrelationID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationKey{}).(string)
	return id, ok && id != ""
}
