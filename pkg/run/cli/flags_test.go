package cli_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cli "github.com/tigerroll/stride/pkg/run/cli"
	model "github.com/tigerroll/stride/pkg/run/core/model"
)

func TestRegisterFlagsParsesAllSwitches(t *testing.T) {
	var opts model.Options
	cmd := &cobra.Command{Use: "test", Run: func(cmd *cobra.Command, args []string) {}}
	cli.RegisterFlags(cmd, &opts)

	cmd.SetArgs([]string{
		"--dump-sql", "--log-sql", "--step", "--diff",
		"--show-memory-usage", "--pause-on-error", "--chunk-size", "500",
	})
	require.NoError(t, cmd.Execute())

	assert.True(t, opts.DumpSQL)
	assert.True(t, opts.LogSQL)
	assert.True(t, opts.Step)
	assert.True(t, opts.Diff)
	assert.True(t, opts.ShowMemoryUsage)
	assert.True(t, opts.PauseOnError)
	assert.Equal(t, 500, opts.ChunkSize)
}

func TestRegisterFlagsDefaults(t *testing.T) {
	var opts model.Options
	cmd := &cobra.Command{Use: "test", Run: func(cmd *cobra.Command, args []string) {}}
	cli.RegisterFlags(cmd, &opts)

	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	assert.False(t, opts.DumpSQL)
	assert.False(t, opts.PauseOnError)
	assert.Zero(t, opts.ChunkSize)
}
