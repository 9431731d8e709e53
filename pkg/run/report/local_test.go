package report_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/tigerroll/stride/pkg/run/core/model"
	report "github.com/tigerroll/stride/pkg/run/report"
)

func TestLocalSinkWritesSummary(t *testing.T) {
	dir := t.TempDir()
	sink := report.NewLocalSink(filepath.Join(dir, "reports"))

	run := model.NewRun(model.Options{})
	run.SetTotal(3)
	run.Advance()
	run.Advance()
	run.MarkAsCompleted()

	summary := report.NewSummary(run, 1)
	require.NoError(t, sink.Write(context.Background(), summary))

	data, err := os.ReadFile(filepath.Join(dir, "reports", run.ID+".json"))
	require.NoError(t, err)

	var decoded report.Summary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, run.ID, decoded.RunID)
	assert.Equal(t, "COMPLETED", decoded.Status)
	assert.Equal(t, int64(3), decoded.Total)
	assert.Equal(t, int64(2), decoded.Processed)
	assert.Equal(t, 1, decoded.Failed)
}
