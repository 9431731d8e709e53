// Package chunk implements the per-chunk processing loop: handler
// invocation, failure policy routing, activity flushing, diff display and
// step pacing.
package chunk

import (
	"context"
	"fmt"
	"io"

	collect "github.com/tigerroll/stride/pkg/run/collect"
	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	progress "github.com/tigerroll/stride/pkg/run/progress"
	exception "github.com/tigerroll/stride/pkg/run/support/util/exception"
	logger "github.com/tigerroll/stride/pkg/run/support/util/logger"
)

// FailurePolicy decides what happens to a per-record handler error. A
// non-nil return stops the run; a nil return lets the loop continue with
// the next record.
type FailurePolicy interface {
	HandleFailure(ctx context.Context, handle *model.RecordHandle, err error) error
}

// PropagatePolicy is the default: the first record error terminates the
// run.
type PropagatePolicy struct{}

// NewPropagatePolicy creates a new PropagatePolicy.
func NewPropagatePolicy() *PropagatePolicy {
	return &PropagatePolicy{}
}

// HandleFailure implements FailurePolicy.
func (p *PropagatePolicy) HandleFailure(ctx context.Context, handle *model.RecordHandle, err error) error {
	return fmt.Errorf("failed to process %s: %w", handle.Label(), err)
}

var _ FailurePolicy = (*PropagatePolicy)(nil)

// CollectPolicy appends every record error to the collector and continues
// unconditionally.
type CollectPolicy struct {
	collector *collect.Collector
}

// NewCollectPolicy creates a CollectPolicy writing to collector.
func NewCollectPolicy(collector *collect.Collector) *CollectPolicy {
	return &CollectPolicy{collector: collector}
}

// HandleFailure implements FailurePolicy.
func (p *CollectPolicy) HandleFailure(ctx context.Context, handle *model.RecordHandle, err error) error {
	p.collector.Add(handle, err)
	return nil
}

var _ FailurePolicy = (*CollectPolicy)(nil)

// ContinuePolicy swallows record errors. It backs pause-on-error runs
// without collection, where the operator's confirmation alone decides
// whether to keep going.
type ContinuePolicy struct{}

// NewContinuePolicy creates a new ContinuePolicy.
func NewContinuePolicy() *ContinuePolicy {
	return &ContinuePolicy{}
}

// HandleFailure implements FailurePolicy.
func (p *ContinuePolicy) HandleFailure(ctx context.Context, handle *model.RecordHandle, err error) error {
	return nil
}

var _ FailurePolicy = (*ContinuePolicy)(nil)

// PausePolicy prints the error, pauses the progress display and asks the
// operator whether to continue. On acceptance the error is delegated to
// the wrapped policy; declining cancels the run.
type PausePolicy struct {
	reporter *progress.Reporter
	prompter port.Prompter
	out      io.Writer
	next     FailurePolicy
}

// NewPausePolicy creates a PausePolicy delegating accepted errors to next.
func NewPausePolicy(reporter *progress.Reporter, prompter port.Prompter, out io.Writer, next FailurePolicy) *PausePolicy {
	return &PausePolicy{reporter: reporter, prompter: prompter, out: out, next: next}
}

// HandleFailure implements FailurePolicy.
func (p *PausePolicy) HandleFailure(ctx context.Context, handle *model.RecordHandle, err error) error {
	p.reporter.Pause()
	defer p.reporter.Resume()

	if logger.IsDebugEnabled() {
		fmt.Fprintf(p.out, "Error processing %s: %+v\n", handle.Label(), err)
	} else {
		fmt.Fprintf(p.out, "Error processing %s: %s: %s\n",
			handle.Label(), exception.KindOf(err), exception.ExtractErrorMessage(err))
	}

	ok, confirmErr := p.prompter.Confirm("Continue with the next record?", true)
	if confirmErr != nil {
		return fmt.Errorf("failure confirmation failed: %w", confirmErr)
	}
	if !ok {
		return exception.Abort("Run cancelled by operator.")
	}
	return p.next.HandleFailure(ctx, handle, err)
}

var _ FailurePolicy = (*PausePolicy)(nil)

// NewFailurePolicy selects the policy combination for a run: collect
// and pause-on-error are independent toggles, absence of both means
// immediate propagation.
func NewFailurePolicy(opts model.Options, collecting bool, collector *collect.Collector, reporter *progress.Reporter, prompter port.Prompter, out io.Writer) FailurePolicy {
	var policy FailurePolicy
	switch {
	case collecting:
		policy = NewCollectPolicy(collector)
	case opts.PauseOnError:
		policy = NewContinuePolicy()
	default:
		policy = NewPropagatePolicy()
	}
	if opts.PauseOnError {
		policy = NewPausePolicy(reporter, prompter, out, policy)
	}
	return policy
}
