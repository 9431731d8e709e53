package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// LocalSink writes run summaries as JSON files into a directory, one file
// per run keyed by run ID.
type LocalSink struct {
	dir string
}

// NewLocalSink creates a LocalSink rooted at dir.
func NewLocalSink(dir string) *LocalSink {
	return &LocalSink{dir: dir}
}

// Write implements Sink.
func (s *LocalSink) Write(ctx context.Context, summary *Summary) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	path := filepath.Join(s.dir, summary.RunID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run summary to %s: %w", path, err)
	}
	logger.Debugf("Run summary written to %s.", path)
	return nil
}

var _ Sink = (*LocalSink)(nil)
