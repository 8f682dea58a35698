package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	traceScope = "gigcopilot.orchestrator"

	SpanTurn     = "gigcopilot.turn"
	SpanClassify = "gigcopilot.classify"
	SpanHandle   = "gigcopilot.handle"

	AttrTurnID   = "gigcopilot.turn_id"
	AttrUserID   = "gigcopilot.user_id"
	AttrCategory = "gigcopilot.category"
	AttrOutcome  = "gigcopilot.outcome"
)

// StartSpan starts a span on the global tracer provider.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(traceScope).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err, if any, and ends span.
func EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
