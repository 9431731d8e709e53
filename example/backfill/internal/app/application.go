// Package app assembles the backfill example with uber-fx and executes
// one run.
package app

import (
	"context"
	"embed"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/tigerroll/stride/example/backfill/internal/command"
	"github.com/tigerroll/stride/example/backfill/internal/migration"
	gormdb "github.com/tigerroll/stride/pkg/run/adapter/database/gorm"
	_ "github.com/tigerroll/stride/pkg/run/adapter/database/gorm/sqlite"
	config "github.com/tigerroll/stride/pkg/run/core/config"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	runner "github.com/tigerroll/stride/pkg/run/engine/runner"
	inframetrics "github.com/tigerroll/stride/pkg/run/infrastructure/metrics"
	metrics "github.com/tigerroll/stride/pkg/run/metrics"
	report "github.com/tigerroll/stride/pkg/run/report"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// runParams collects the dependencies of the run invocation.
type runParams struct {
	fx.In
	Cfg  *config.Config
	DB   *gorm.DB
	Sink report.Sink
	Cmd  *command.NormalizeEmails
	Opts model.Options
}

// Run builds the Fx application, applies migrations and executes the
// command. The process exits with the run's exit code.
func Run(ctx context.Context, opts model.Options, embeddedConfig []byte, migrationsFS embed.FS) error {
	envFilePath := os.Getenv("ENV_FILE_PATH")
	if envFilePath == "" {
		envFilePath = ".env"
	}

	tracer := metrics.NewNoOpTracer()
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		shutdown, err := inframetrics.SetupTracerProvider(ctx, endpoint, "backfill")
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warnf("Failed to flush traces: %v", err)
			}
		}()
		tracer = inframetrics.NewOpenTelemetryTracer()
	}
	recorder := inframetrics.NewPrometheusRecorder()

	var exitCode model.ExitCode

	fxApp := fx.New(
		fx.Supply(
			config.EmbeddedConfig(embeddedConfig),
			opts,
			fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
		),
		logger.Module,
		config.Module,
		gormdb.Module,
		report.Module,
		fx.Provide(command.NewNormalizeEmails),
		fx.Invoke(func(p runParams) error {
			if err := migration.Apply(p.DB, migrationsFS, "resources/migrations"); err != nil {
				return err
			}

			runOpts := p.Opts
			if runOpts.ChunkSize <= 0 {
				runOpts.ChunkSize = p.Cfg.Stride.Batch.ChunkSize
			}

			options := []runner.Option{
				runner.WithMetricRecorder(recorder),
				runner.WithTracer(tracer),
			}
			if p.Sink != nil {
				options = append(options, runner.WithReportSink(p.Sink))
			}

			outcome := runner.New(p.Cmd, runOpts, options...).Run(ctx)
			if outcome.Message != "" {
				logger.Infof("%s", outcome.Message)
			}
			if outcome.Err != nil {
				logger.Errorf("Run failed: %v", outcome.Err)
			}
			exitCode = outcome.Code
			return nil
		}),
	)

	if err := fxApp.Start(ctx); err != nil {
		return err
	}
	if err := fxApp.Stop(ctx); err != nil {
		return err
	}
	if exitCode != model.ExitCodeSuccess {
		os.Exit(int(exitCode))
	}
	return nil
}
