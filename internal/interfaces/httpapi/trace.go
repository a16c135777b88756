package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("matchday-intel/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a span for handler entry points only. Each span carries the
// handler name and the request id so a resolve call can be found from the
// X-Request-ID a client reports.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// Filtered routes such as /healthz carry no parent span.
		return ctx, noopSpan
	}
	if !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(handlerAttributes(ctx, name)...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

func handlerAttributes(ctx context.Context, name string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("matchday.handler", strings.TrimPrefix(name, handlerSpanPrefix))}
	if id := requestIDFromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("matchday.request_id", id))
	}
	return attrs
}
