package chunk

import (
	"context"
	"fmt"
	"io"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	diff "github.com/tigerroll/stride/pkg/run/diff"
	metrics "github.com/tigerroll/stride/pkg/run/metrics"
	progress "github.com/tigerroll/stride/pkg/run/progress"
	sqllog "github.com/tigerroll/stride/pkg/run/sqllog"
	stepper "github.com/tigerroll/stride/pkg/run/stepper"
	exception "github.com/tigerroll/stride/pkg/run/support/util/exception"
)

// Processor drives one chunk at a time through the per-record pipeline.
// It implements the ChunkFunc shape expected by a QuerySource.
type Processor struct {
	command  port.Command
	run      *model.Run
	reporter *progress.Reporter
	stepper  *stepper.Controller
	policy   FailurePolicy
	activity *sqllog.ActivityLog
	out      io.Writer
	recorder metrics.MetricRecorder
	tracer   metrics.Tracer

	chunkIndex int
}

// NewProcessor assembles a Processor. activity may be nil when query
// logging is disabled; recorder and tracer must be non-nil (use the noop
// implementations to disable them).
func NewProcessor(
	command port.Command,
	run *model.Run,
	reporter *progress.Reporter,
	stepCtrl *stepper.Controller,
	policy FailurePolicy,
	activity *sqllog.ActivityLog,
	out io.Writer,
	recorder metrics.MetricRecorder,
	tracer metrics.Tracer,
) *Processor {
	return &Processor{
		command:  command,
		run:      run,
		reporter: reporter,
		stepper:  stepCtrl,
		policy:   policy,
		activity: activity,
		out:      out,
		recorder: recorder,
		tracer:   tracer,
	}
}

// ProcessChunk processes every record of the chunk in order. It satisfies
// port.ChunkFunc: a returned error stops the run, and the engine never
// fetches another chunk once stopped.
func (p *Processor) ProcessChunk(ctx context.Context, chunk []*model.RecordHandle) (bool, error) {
	ctx, endSpan := p.tracer.StartChunkSpan(ctx, p.run, p.chunkIndex)
	defer endSpan()
	p.chunkIndex++

	if preparer, ok := p.command.(port.ChunkPreparer); ok {
		if err := preparer.PrepareChunk(ctx, chunk); err != nil {
			return false, fmt.Errorf("failed to prepare chunk: %w", err)
		}
	}

	for _, handle := range chunk {
		if err := p.processRecord(ctx, handle); err != nil {
			return false, err
		}
	}
	p.recorder.RecordChunk(ctx, p.command.RowName(), len(chunk))
	return true, nil
}

func (p *Processor) processRecord(ctx context.Context, handle *model.RecordHandle) error {
	var before map[string]any
	var trackable bool
	if p.run.Options.Diff {
		before, trackable = diff.Capture(handle.Value)
	}

	handlerErr := p.command.HandleRow(ctx, handle)

	// The counter advances whether the handler succeeded or not.
	p.run.Advance()
	p.reporter.Advance()

	if handlerErr == nil {
		p.recorder.RecordRecordSuccess(ctx, p.command.RowName())
	} else {
		p.recorder.RecordRecordFailure(ctx, p.command.RowName(), exception.KindOf(handlerErr))
		p.tracer.RecordError(ctx, "handler", handlerErr)
	}

	p.flushActivity()

	if p.run.Options.Diff {
		// The capability check does not depend on the handler outcome: an
		// untrackable record is a contract violation, not a record failure,
		// and stops the run before any further records are touched.
		if !trackable {
			return exception.Setupf("%s does not support change tracking; --diff cannot be used with this command", handle.Label())
		}
		if handlerErr == nil {
			after, _ := diff.Capture(handle.Value)
			changes := diff.Changes(before, after)
			p.reporter.Interrupt(func(w io.Writer) {
				diff.Render(w, handle.Label(), changes)
			})
		}
	}

	if handlerErr != nil {
		if err := p.policy.HandleFailure(ctx, handle, handlerErr); err != nil {
			return err
		}
	}

	if p.stepper.Enabled() {
		p.reporter.Pause()
		err := p.stepper.ConfirmRecord(handle)
		p.reporter.Resume()
		if err != nil {
			return err
		}
	}
	return nil
}

// flushActivity displays the queries recorded since the previous record
// and clears the log.
func (p *Processor) flushActivity() {
	if p.activity == nil {
		return
	}
	entries := p.activity.Drain()
	if len(entries) == 0 {
		return
	}
	p.reporter.Interrupt(func(w io.Writer) {
		for _, entry := range entries {
			entry.Render(w)
		}
	})
}
