package report

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	config "github.com/tigerroll/stride/pkg/run/core/config"
)

// NewSinkFromConfig builds the configured report sink. An empty report
// type disables reporting and returns a nil Sink.
func NewSinkFromConfig(cfg *config.Config) (Sink, error) {
	rc := cfg.Stride.Report
	switch rc.Type {
	case "":
		return nil, nil
	case "local":
		dir := rc.Dir
		if dir == "" {
			dir = "reports"
		}
		return NewLocalSink(dir), nil
	case "gcs":
		if rc.Bucket == "" {
			return nil, fmt.Errorf("report type 'gcs' requires a bucket")
		}
		return NewGCSSink(context.Background(), rc.Bucket, rc.Prefix)
	default:
		return nil, fmt.Errorf("unsupported report type: %s", rc.Type)
	}
}

// Module is an Fx module providing the configured report Sink.
var Module = fx.Options(
	fx.Provide(NewSinkFromConfig),
)
