// Package cli binds the run engine's operator switches onto a cobra
// command, so every Stride-based tool exposes the same flag surface.
package cli

import (
	"github.com/spf13/cobra"

	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// RegisterFlags registers the standard run flags on cmd, bound to opts.
func RegisterFlags(cmd *cobra.Command, opts *model.Options) {
	flags := cmd.Flags()
	flags.BoolVar(&opts.DumpSQL, "dump-sql", false, "print the resolved query and exit without processing")
	flags.BoolVar(&opts.LogSQL, "log-sql", false, "display every query executed per record")
	flags.BoolVar(&opts.Step, "step", false, "confirm before processing each record")
	flags.BoolVar(&opts.Diff, "diff", false, "display before/after field changes per record")
	flags.BoolVar(&opts.ShowMemoryUsage, "show-memory-usage", false, "annotate progress with process memory usage")
	flags.BoolVar(&opts.PauseOnError, "pause-on-error", false, "pause and confirm on record errors instead of failing")
	flags.IntVar(&opts.ChunkSize, "chunk-size", 0, "records fetched per chunk (0 uses the configured default)")
}
