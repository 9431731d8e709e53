// Package model defines the core domain objects of a Stride run: the run
// itself, its terminal outcome, the operator-facing options and the handle
// wrapping each record passed to the caller's handler.
package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ExitCode is the process exit status derived from a run's outcome.
type ExitCode int

const (
	// ExitCodeSuccess indicates the run completed, or was deliberately
	// short-circuited (e.g. a query dump), without failure.
	ExitCodeSuccess ExitCode = 0
	// ExitCodeFailure indicates a generic failure: a propagated record error,
	// collected exceptions at the end of the run, or operator cancellation.
	ExitCodeFailure ExitCode = 1
	// ExitCodeInvalidSetup indicates a configuration or contract violation:
	// a missing handler or query, an unusable query shape, or a feature
	// requested against records that cannot support it.
	ExitCodeInvalidSetup ExitCode = 2
)

// RunStatus represents the lifecycle state of a run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusAborted   RunStatus = "ABORTED"
	RunStatusFailed    RunStatus = "FAILED"
)

// IsFinished reports whether the status is terminal.
func (s RunStatus) IsFinished() bool {
	return s == RunStatusCompleted || s == RunStatusAborted || s == RunStatusFailed
}

// Options holds the operator-facing switches of a single run. They map
// one-to-one onto the command line flags registered by the cli package.
type Options struct {
	// DumpSQL prints the resolved query text and exits without processing.
	DumpSQL bool
	// LogSQL records and displays every query executed per record. It also
	// elevates log verbosity, the same way step mode does.
	LogSQL bool
	// Step asks for confirmation before continuing past each record.
	Step bool
	// Diff displays before/after field changes per record. Records must
	// support change tracking; a record that does not aborts the run.
	Diff bool
	// ShowMemoryUsage annotates the progress display with process memory.
	ShowMemoryUsage bool
	// PauseOnError pauses and asks for confirmation on each record error
	// instead of propagating it immediately.
	PauseOnError bool
	// ChunkSize is the number of records fetched per chunk. Zero selects
	// the configured or built-in default.
	ChunkSize int
}

// DefaultChunkSize is used when neither the options nor the configuration
// specify a chunk size.
const DefaultChunkSize = 100

// Run represents one engine invocation. It is owned exclusively by the
// runner: created during preparation and marked terminal exactly once.
type Run struct {
	ID         string
	Status     RunStatus
	Options    Options
	Total      int64
	TotalKnown bool
	Processed  int64
	StartedAt  time.Time
	EndedAt    time.Time
}

// NewRun creates a Run in the RUNNING state with a fresh identifier.
func NewRun(opts Options) *Run {
	return &Run{
		ID:        uuid.New().String(),
		Status:    RunStatusRunning,
		Options:   opts,
		StartedAt: time.Now(),
	}
}

// SetTotal records the resolved total record count. The count is unknown
// until the engine has asked the query source for it.
func (r *Run) SetTotal(total int64) {
	r.Total = total
	r.TotalKnown = true
}

// Advance increments the processed counter by one. The counter never
// decreases.
func (r *Run) Advance() {
	r.Processed++
}

// MarkAsCompleted transitions the run to COMPLETED. Terminal states are
// final: once finished the run never changes status again.
func (r *Run) MarkAsCompleted() { r.finish(RunStatusCompleted) }

// MarkAsAborted transitions the run to ABORTED.
func (r *Run) MarkAsAborted() { r.finish(RunStatusAborted) }

// MarkAsFailed transitions the run to FAILED.
func (r *Run) MarkAsFailed() { r.finish(RunStatusFailed) }

func (r *Run) finish(status RunStatus) {
	if r.Status.IsFinished() {
		return
	}
	r.Status = status
	r.EndedAt = time.Now()
}

// Duration returns the elapsed wall time of the run. For a run that is
// still in progress it measures up to now.
func (r *Run) Duration() time.Duration {
	if r.EndedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// Outcome is the explicit result of a run, threaded back to the caller
// instead of a thrown sentinel. Exactly one of the three constructors
// produces it.
type Outcome struct {
	Status  RunStatus
	Message string
	Code    ExitCode
	Err     error
}

// CompletedOutcome reports a successful run.
func CompletedOutcome() Outcome {
	return Outcome{Status: RunStatusCompleted, Code: ExitCodeSuccess}
}

// AbortedOutcome reports a deliberate stop with a message and exit code.
// A zero code marks a benign short-circuit such as a query dump.
func AbortedOutcome(message string, code ExitCode) Outcome {
	return Outcome{Status: RunStatusAborted, Message: message, Code: code}
}

// FailedOutcome reports an unrecovered error. The error is carried so the
// process boundary can surface it before exiting non-zero.
func FailedOutcome(err error) Outcome {
	return Outcome{Status: RunStatusFailed, Code: ExitCodeFailure, Err: err}
}

// Labeled is implemented by record values that can identify themselves for
// display, e.g. in the progress of step mode or the final exception report.
type Labeled interface {
	// RecordLabel returns a short human-readable identifier for the record.
	RecordLabel() string
}

// RecordHandle is one unit of work handed to the caller's handler. The
// engine treats the wrapped value as opaque except for the optional Labeled
// capability and, when diff display is active, change tracking.
type RecordHandle struct {
	// Value is the record itself, usually a pointer so handler mutations
	// are visible to diff capture and the data layer.
	Value any
	// Position is the zero-based index of the record within the whole run.
	Position int64
}

// Label returns the record's identifying label: the Labeled capability if
// the value provides one, otherwise its position in the run.
func (h *RecordHandle) Label() string {
	if l, ok := h.Value.(Labeled); ok {
		return l.RecordLabel()
	}
	return "#" + strconv.FormatInt(h.Position+1, 10)
}
