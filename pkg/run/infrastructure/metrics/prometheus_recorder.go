package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	model "github.com/tigerroll/stride/pkg/run/core/model"
	metrics "github.com/tigerroll/stride/pkg/run/metrics"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// PrometheusRecorder is a Prometheus implementation of the
// metrics.MetricRecorder interface.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	runDurationSeconds *prometheus.HistogramVec
	runStatusCounter   *prometheus.CounterVec

	recordSuccessCounter *prometheus.CounterVec
	recordFailureCounter *prometheus.CounterVec
	chunkCounter         *prometheus.CounterVec

	operationDurationSeconds *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() metrics.MetricRecorder {
	registry := prometheus.NewRegistry()

	// Register Go standard metrics and process/OS metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		runDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "run_duration_seconds",
			Help:    "Duration of engine runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}),
		runStatusCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "run_status_total",
			Help: "Total number of runs by status.",
		}, []string{"status"}),
		recordSuccessCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "run_record_success_total",
			Help: "Total records processed successfully.",
		}, []string{"row_name"}),
		recordFailureCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "run_record_failure_total",
			Help: "Total record failures by error kind.",
		}, []string{"row_name", "reason"}),
		chunkCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "run_chunk_total",
			Help: "Total chunks fetched from the query source.",
		}, []string{"row_name"}),
		operationDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "run_operation_duration_seconds",
			Help:    "Duration of named engine operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"name"}),
	}

	registry.MustRegister(r.runDurationSeconds)
	registry.MustRegister(r.runStatusCounter)
	registry.MustRegister(r.recordSuccessCounter)
	registry.MustRegister(r.recordFailureCounter)
	registry.MustRegister(r.chunkCounter)
	registry.MustRegister(r.operationDurationSeconds)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordRunStart records the start of a run.
func (r *PrometheusRecorder) RecordRunStart(ctx context.Context, run *model.Run) {
	r.runStatusCounter.WithLabelValues(string(run.Status)).Inc()
	logger.Debugf("Metrics: Run '%s' started.", run.ID)
}

// RecordRunEnd records the end of a run.
func (r *PrometheusRecorder) RecordRunEnd(ctx context.Context, run *model.Run) {
	if !run.Status.IsFinished() {
		return
	}
	duration := run.Duration().Seconds()
	r.runStatusCounter.WithLabelValues(string(run.Status)).Inc()
	r.runDurationSeconds.WithLabelValues(string(run.Status)).Observe(duration)
	logger.Debugf("Metrics: Run '%s' ended. Duration: %.3fs", run.ID, duration)
}

// RecordRecordSuccess records one successfully processed record.
func (r *PrometheusRecorder) RecordRecordSuccess(ctx context.Context, rowName string) {
	r.recordSuccessCounter.WithLabelValues(rowName).Inc()
}

// RecordRecordFailure records one failed record with its error kind.
func (r *PrometheusRecorder) RecordRecordFailure(ctx context.Context, rowName string, reason string) {
	r.recordFailureCounter.WithLabelValues(rowName, reason).Inc()
}

// RecordChunk records completion of one chunk.
func (r *PrometheusRecorder) RecordChunk(ctx context.Context, rowName string, count int) {
	r.chunkCounter.WithLabelValues(rowName).Inc()
}

// RecordDuration records the execution time of a named operation. Tags are
// not mapped onto Prometheus labels because label sets must be fixed.
func (r *PrometheusRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
	r.operationDurationSeconds.WithLabelValues(name).Observe(duration.Seconds())
}

var _ metrics.MetricRecorder = (*PrometheusRecorder)(nil)
