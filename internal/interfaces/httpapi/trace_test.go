package httpapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "handler span", in: "httpapi.Handler.ResolveLineup", want: true},
		{name: "middleware span", in: "httpapi.RequestLogging", want: false},
		{name: "helper span", in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldCreateHTTPAPISpan(tt.in))
		})
	}
}

func TestStartSpan_NoParentIsNoop(t *testing.T) {
	ctx, span := startSpan(t.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	assert.Equal(t, t.Context(), ctx)
	assert.False(t, span.SpanContext().IsValid())
}

func TestHandlerAttributes(t *testing.T) {
	attrs := handlerAttributes(withRequestID(t.Context(), "req-42"), "httpapi.Handler.ResolveReferee")

	assert.Equal(t, []attribute.KeyValue{
		attribute.String("matchday.handler", "ResolveReferee"),
		attribute.String("matchday.request_id", "req-42"),
	}, attrs)
	assert.Len(t, handlerAttributes(t.Context(), "httpapi.Handler.Healthz"), 1)
}
