package main

import (
	"context"
	"embed"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tigerroll/stride/example/backfill/internal/app"
	cli "github.com/tigerroll/stride/pkg/run/cli"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

//go:embed resources/application.yaml
var embeddedConfig []byte

//go:embed all:resources/migrations
var migrationsFS embed.FS

func newRootCommand() *cobra.Command {
	var opts model.Options
	cmd := &cobra.Command{
		Use:          "backfill",
		Short:        "Normalize user email addresses in chunks",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts, embeddedConfig, migrationsFS)
		},
	}
	cli.RegisterFlags(cmd, &opts)
	return cmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown on Ctrl+C: the engine stops at the next chunk
	// boundary through context cancellation.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Warnf("Received signal '%v'. Stopping the run...", sig)
		cancel()
	}()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger.Fatalf("backfill failed: %v", err)
	}
}
