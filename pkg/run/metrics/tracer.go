package metrics

import (
	"context"

	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// Tracer is an abstract interface for distributed tracing of run
// execution. It enables integration with tracing systems like
// OpenTelemetry without coupling the engine to a specific SDK.
type Tracer interface {
	// StartRunSpan starts a span covering the whole run.
	//
	// Returns a context carrying the new span and a function that ends
	// it. The returned function is typically deferred.
	StartRunSpan(ctx context.Context, run *model.Run) (context.Context, func())

	// StartChunkSpan starts a span covering one chunk of records.
	StartChunkSpan(ctx context.Context, run *model.Run, chunkIndex int) (context.Context, func())

	// RecordError records an error on the current span. module names the
	// component where the error occurred (e.g. "handler", "source").
	RecordError(ctx context.Context, module string, err error)

	// RecordEvent records a point-in-time event on the current span.
	RecordEvent(ctx context.Context, name string, attributes map[string]interface{})
}
