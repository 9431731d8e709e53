// Package report persists a machine-readable summary of a finished run.
// Sinks are optional: a runner without one writes nothing.
package report

import (
	"context"
	"time"

	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// Summary is the exported record of one finished run.
type Summary struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	Total     int64     `json:"total"`
	Processed int64     `json:"processed"`
	Failed    int       `json:"failed"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Duration  string    `json:"duration"`
}

// NewSummary builds a Summary from a finished run.
func NewSummary(run *model.Run, failed int) *Summary {
	return &Summary{
		RunID:     run.ID,
		Status:    string(run.Status),
		Total:     run.Total,
		Processed: run.Processed,
		Failed:    failed,
		StartedAt: run.StartedAt,
		EndedAt:   run.EndedAt,
		Duration:  run.Duration().String(),
	}
}

// Sink writes run summaries to a destination.
type Sink interface {
	Write(ctx context.Context, summary *Summary) error
}
