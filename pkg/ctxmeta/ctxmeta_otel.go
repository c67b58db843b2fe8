//go:build otel && !gopls

package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// spanContext — контекст активного спана; удалённый родитель тоже подходит.
func spanContext(ctx context.Context) (trace.SpanContext, bool) {
	if ctx == nil {
		return trace.SpanContext{}, false
	}
	sc := trace.SpanContextFromContext(ctx)
	return sc, sc.IsValid()
}

// TraceIDFromContext — trace_id в hex для логов.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if sc, ok := spanContext(ctx); ok {
		return sc.TraceID().String(), true
	}
	return "", false
}

// SpanIDFromContext — span_id в hex для логов.
func SpanIDFromContext(ctx context.Context) (string, bool) {
	if sc, ok := spanContext(ctx); ok {
		return sc.SpanID().String(), true
	}
	return "", false
}
