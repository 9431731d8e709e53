package metrics

import (
	"context"
	"time"

	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// MetricRecorder is an abstract interface for recording metrics about run
// execution. It decouples the engine from concrete backends such as
// Prometheus.
type MetricRecorder interface {
	// RecordRunStart records the start of a run.
	RecordRunStart(ctx context.Context, run *model.Run)

	// RecordRunEnd records the end of a run, whatever its final status.
	RecordRunEnd(ctx context.Context, run *model.Run)

	// RecordRecordSuccess records one successfully processed record.
	RecordRecordSuccess(ctx context.Context, rowName string)

	// RecordRecordFailure records one failed record together with the
	// error kind that caused it.
	RecordRecordFailure(ctx context.Context, rowName string, reason string)

	// RecordChunk records completion of one chunk of the given size.
	RecordChunk(ctx context.Context, rowName string, count int)

	// RecordDuration records the execution time of a named operation.
	// tags carry additional attributes, for example the query source kind.
	RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string)
}
