package logger

import (
	"context"

	"go.uber.org/zap"
)

type traceIDKey struct{}

// WithTraceID stores the request trace id for downstream logging.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceID(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey{}).(string); ok {
		return v
	}
	return ""
}

// For returns log annotated with the trace id carried by ctx, if any.
func For(ctx context.Context, log *zap.Logger) *zap.Logger {
	if id := TraceID(ctx); id != "" {
		return log.With(zap.String("trace_id", id))
	}
	return log
}
