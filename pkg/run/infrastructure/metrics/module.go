package metrics

import (
	"go.uber.org/fx"

	metrics "github.com/tigerroll/stride/pkg/run/metrics"
)

// Module is an Fx module that provides PrometheusRecorder and
// OpenTelemetryTracer as the concrete metrics components.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewPrometheusRecorder,
		fx.As(new(metrics.MetricRecorder)),
	)),
	fx.Provide(fx.Annotate(
		NewOpenTelemetryTracer,
		fx.As(new(metrics.Tracer)),
	)),
)
