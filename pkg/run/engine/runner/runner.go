// Package runner orchestrates a run end to end: prepare, intro, chunked
// streaming, finish. It owns the run lifecycle and converts deliberate
// aborts into an explicit outcome instead of letting them escape.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	collect "github.com/tigerroll/stride/pkg/run/collect"
	console "github.com/tigerroll/stride/pkg/run/console"
	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	chunk "github.com/tigerroll/stride/pkg/run/engine/chunk"
	metrics "github.com/tigerroll/stride/pkg/run/metrics"
	progress "github.com/tigerroll/stride/pkg/run/progress"
	report "github.com/tigerroll/stride/pkg/run/report"
	sqllog "github.com/tigerroll/stride/pkg/run/sqllog"
	stepper "github.com/tigerroll/stride/pkg/run/stepper"
	exception "github.com/tigerroll/stride/pkg/run/support/util/exception"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// Runner executes one command as a complete run.
type Runner struct {
	command  port.Command
	opts     model.Options
	out      io.Writer
	prompter port.Prompter
	table    port.TableRenderer
	recorder metrics.MetricRecorder
	tracer   metrics.Tracer
	sink     report.Sink
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects the runner's terminal output.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) { r.out = out }
}

// WithPrompter replaces the interactive prompter.
func WithPrompter(p port.Prompter) Option {
	return func(r *Runner) { r.prompter = p }
}

// WithTableRenderer replaces the exception report renderer.
func WithTableRenderer(t port.TableRenderer) Option {
	return func(r *Runner) { r.table = t }
}

// WithMetricRecorder attaches a metric recorder.
func WithMetricRecorder(rec metrics.MetricRecorder) Option {
	return func(r *Runner) { r.recorder = rec }
}

// WithTracer attaches a tracer.
func WithTracer(t metrics.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithReportSink attaches a sink that receives the run summary after the
// run finishes.
func WithReportSink(s report.Sink) Option {
	return func(r *Runner) { r.sink = s }
}

// New creates a Runner for the command. Defaults: stdout/stdin terminal
// interaction, tabwriter report tables, noop metrics.
func New(command port.Command, opts model.Options, options ...Option) *Runner {
	r := &Runner{
		command:  command,
		opts:     opts,
		out:      os.Stdout,
		prompter: console.NewStdinPrompter(os.Stdin, os.Stdout),
		table:    console.NewTabTableRenderer(),
		recorder: metrics.NewNoOpMetricRecorder(),
		tracer:   metrics.NewNoOpTracer(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// state carries the per-run collaborators across the phases.
type state struct {
	run        *model.Run
	source     port.QuerySource
	activity   *sqllog.ActivityLog
	reporter   *progress.Reporter
	collector  *collect.Collector
	useTx      bool
	collecting bool
	chunkSize  int
}

// Run executes the phases in strict order and returns the explicit
// outcome. Only a deliberate abort is intercepted; any other error is
// carried out as a failed outcome for the process boundary to surface.
func (r *Runner) Run(ctx context.Context) model.Outcome {
	run := model.NewRun(r.opts)
	ctx, endSpan := r.tracer.StartRunSpan(ctx, run)
	defer endSpan()
	r.recorder.RecordRunStart(ctx, run)

	st := &state{run: run, collector: collect.NewCollector()}
	outcome := r.execute(ctx, st)

	r.recorder.RecordRunEnd(ctx, run)
	r.writeSummary(ctx, st)
	return outcome
}

func (r *Runner) execute(ctx context.Context, st *state) model.Outcome {
	err := r.phases(ctx, st)
	if err == nil {
		st.run.MarkAsCompleted()
		return model.CompletedOutcome()
	}
	if abortErr, ok := exception.AsAbort(err); ok {
		st.run.MarkAsAborted()
		return model.AbortedOutcome(abortErr.Message, abortErr.Code)
	}
	st.run.MarkAsFailed()
	r.tracer.RecordError(ctx, "runner", err)
	return model.FailedOutcome(err)
}

func (r *Runner) phases(ctx context.Context, st *state) error {
	if err := r.prepare(ctx, st); err != nil {
		return err
	}
	r.printIntro(st)
	if err := r.stream(ctx, st); err != nil {
		return err
	}
	return r.finish(ctx, st)
}

// prepare validates the command contract, configures activity logging and
// verbosity, fires the before-first-row hook and handles the query dump
// short-circuit.
func (r *Runner) prepare(ctx context.Context, st *state) error {
	if r.command == nil {
		return exception.Setup("No command given; nothing to run.")
	}
	st.source = r.command.Query()
	if st.source == nil {
		return exception.Setup("Command provides no query; nothing to process.")
	}

	st.chunkSize = r.opts.ChunkSize
	if st.chunkSize <= 0 {
		st.chunkSize = model.DefaultChunkSize
	}

	if tx, ok := r.command.(port.Transactional); ok && tx.UseTransaction() {
		if _, ok := st.source.(port.TransactionalSource); !ok {
			return exception.Setup("Command requests a transaction but its query source cannot provide one.")
		}
		st.useTx = true
	}
	if c, ok := r.command.(port.ExceptionCollecting); ok && c.CollectExceptions() {
		st.collecting = true
	}

	if r.opts.LogSQL {
		if observable, ok := st.source.(port.ObservableSource); ok {
			st.activity = sqllog.NewActivityLog()
			observable.SetActivityRecorder(st.activity)
		} else {
			logger.Warnf("Query logging requested but the query source does not report its activity.")
		}
	}
	if r.opts.Step || r.opts.LogSQL {
		logger.SetLogLevel("DEBUG")
	}

	if hooks, ok := r.command.(port.LifecycleHooks); ok {
		if err := hooks.BeforeFirstRow(ctx); err != nil {
			return fmt.Errorf("before-first-row hook failed: %w", err)
		}
	}

	if r.opts.DumpSQL {
		query, binds := st.source.Describe()
		fmt.Fprintln(r.out, sqllog.Prettify(sqllog.FormatSQL(query, binds)))
		return exception.AbortWithCode(model.ExitCodeSuccess, "")
	}
	return nil
}

// printIntro names what is about to happen and whether a transaction wraps
// the run.
func (r *Runner) printIntro(st *state) {
	if st.useTx {
		fmt.Fprintf(r.out, "About to process %s within a single transaction.\n", r.command.RowNamePlural())
		return
	}
	fmt.Fprintf(r.out, "About to process %s.\n", r.command.RowNamePlural())
}

// stream resolves the total, runs the chunked loop and finishes the
// progress display. A zero total skips straight to finish.
func (r *Runner) stream(ctx context.Context, st *state) error {
	countStarted := time.Now()
	total, err := st.source.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve the record count: %w", err)
	}
	r.recorder.RecordDuration(ctx, "run.count", time.Since(countStarted), map[string]string{
		"row_name": r.command.RowName(),
	})
	st.run.SetTotal(total)

	if total == 0 {
		fmt.Fprintf(r.out, "No matching %s found. Nothing to do.\n", r.command.RowNamePlural())
		return nil
	}

	st.reporter = progress.NewReporter(r.out, r.opts.ShowMemoryUsage)
	st.reporter.Start(total, r.command.RowName(), r.command.RowNamePlural())

	if notifier, ok := r.command.(port.FirstQueryNotifier); ok {
		if err := notifier.BeforeFirstQuery(ctx); err != nil {
			st.reporter.Finish()
			return fmt.Errorf("before-first-query hook failed: %w", err)
		}
	}

	policy := chunk.NewFailurePolicy(r.opts, st.collecting, st.collector, st.reporter, r.prompter, r.out)
	processor := chunk.NewProcessor(
		r.command, st.run, st.reporter,
		stepper.NewController(r.opts.Step, r.prompter),
		policy, st.activity, r.out,
		r.recorder, r.tracer,
	)

	loop := func(source port.QuerySource) error {
		if iterator, ok := r.command.(port.Iterator); ok {
			return iterator.IterateOverQuery(ctx, source, st.chunkSize, processor.ProcessChunk)
		}
		return source.EachChunk(ctx, st.chunkSize, processor.ProcessChunk)
	}

	var loopErr error
	if st.useTx {
		loopErr = st.source.(port.TransactionalSource).Transaction(ctx, loop)
	} else {
		loopErr = loop(st.source)
	}

	// The display is finished before any error is re-raised, so the last
	// counter stays visible above the failure output.
	st.reporter.Finish()
	if loopErr != nil {
		return loopErr
	}

	fmt.Fprintf(r.out, "Processed %d of %d %s in %s (%d failed).\n",
		st.run.Processed, st.run.Total, r.command.RowNamePlural(),
		st.reporter.Elapsed().Round(time.Millisecond), st.collector.Len())
	return nil
}

// finish fires the after-last-row hook and prints the collected exception
// report; a non-empty report turns the run into a failure.
func (r *Runner) finish(ctx context.Context, st *state) error {
	if hooks, ok := r.command.(port.LifecycleHooks); ok {
		if err := hooks.AfterLastRow(ctx); err != nil {
			return fmt.Errorf("after-last-row hook failed: %w", err)
		}
	}

	if st.collector.Len() == 0 {
		return nil
	}
	st.collector.Report(r.out, r.table)
	return &exception.AbortError{
		Message: fmt.Sprintf("%d %s could not be processed.", st.collector.Len(), pluralizeRecord(st.collector.Len(), r.command)),
		Code:    model.ExitCodeFailure,
		Err:     st.collector.AsError(),
	}
}

func pluralizeRecord(n int, cmd port.Command) string {
	if n == 1 {
		return cmd.RowName()
	}
	return cmd.RowNamePlural()
}

// writeSummary exports the finished run to the configured sink, if any.
func (r *Runner) writeSummary(ctx context.Context, st *state) {
	if r.sink == nil {
		return
	}
	if err := r.sink.Write(ctx, report.NewSummary(st.run, st.collector.Len())); err != nil {
		logger.Warnf("Failed to write run summary: %v", err)
	}
}
