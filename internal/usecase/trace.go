package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
)

var usecaseTracer = otel.Tracer("matchday-intel/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only nests under an existing span; background work with no
// request behind it stays untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func fixtureAttributes(f fixture.Fixture) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("matchday.fixture", f.Key()),
		attribute.String("matchday.league", string(f.League)),
		attribute.String("matchday.date", f.DateKey()),
	}
}
