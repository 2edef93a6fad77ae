package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is the type of keys this package stores in a context.
type ContextKey string

// TraceIDKey is the context key for the request trace ID.
const TraceIDKey ContextKey = "traceID"

// SetTraceID stores a freshly generated trace ID in ctx.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewTraceID())
}

// WithTraceID stores traceID in ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID returns the trace ID stored in ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// NewTraceID returns a random 32 character hex string.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
