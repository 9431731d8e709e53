package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	model "github.com/tigerroll/stride/pkg/run/core/model"
	metrics "github.com/tigerroll/stride/pkg/run/metrics"
)

// OpenTelemetryTracer is an implementation of metrics.Tracer using
// OpenTelemetry. Spans are created from the globally registered tracer
// provider, so SetupTracerProvider must run first for spans to be
// exported.
type OpenTelemetryTracer struct {
	tracer trace.Tracer
}

// NewOpenTelemetryTracer creates a new instance of OpenTelemetryTracer.
func NewOpenTelemetryTracer() metrics.Tracer {
	return &OpenTelemetryTracer{tracer: otel.Tracer("stride/run")}
}

// StartRunSpan starts a span covering the whole run.
func (t *OpenTelemetryTracer) StartRunSpan(ctx context.Context, run *model.Run) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "run",
		trace.WithAttributes(attribute.String("run.id", run.ID)),
	)
	return ctx, func() {
		span.SetAttributes(
			attribute.String("run.status", string(run.Status)),
			attribute.Int64("run.processed", run.Processed),
		)
		span.End()
	}
}

// StartChunkSpan starts a span covering one chunk of records.
func (t *OpenTelemetryTracer) StartChunkSpan(ctx context.Context, run *model.Run, chunkIndex int) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "run.chunk",
		trace.WithAttributes(
			attribute.String("run.id", run.ID),
			attribute.Int("chunk.index", chunkIndex),
		),
	)
	return ctx, func() { span.End() }
}

// RecordError records an error on the current span.
func (t *OpenTelemetryTracer) RecordError(ctx context.Context, module string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(attribute.String("module", module)))
	span.SetStatus(codes.Error, err.Error())
}

// RecordEvent records a point-in-time event on the current span.
func (t *OpenTelemetryTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, val))
		case bool:
			attrs = append(attrs, attribute.Bool(k, val))
		case int:
			attrs = append(attrs, attribute.Int(k, val))
		case int64:
			attrs = append(attrs, attribute.Int64(k, val))
		case float64:
			attrs = append(attrs, attribute.Float64(k, val))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", val)))
		}
	}
	trace.SpanFromContext(ctx).AddEvent(name, trace.WithAttributes(attrs...))
}

var _ metrics.Tracer = (*OpenTelemetryTracer)(nil)
