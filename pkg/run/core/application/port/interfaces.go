// Package port declares the boundary contracts of the Stride engine: the
// command the caller implements, the query source the data layer provides,
// and the small I/O collaborators the runner is handed instead of owning.
package port

import (
	"context"
	"io"
	"time"

	model "github.com/tigerroll/stride/pkg/run/core/model"
)

// ChunkFunc is invoked with each chunk of records streamed from a
// QuerySource. Returning false stops further chunk fetching; the source
// must never request another chunk once stopped.
type ChunkFunc func(ctx context.Context, chunk []*model.RecordHandle) (bool, error)

// QuerySource abstracts the data layer's three query shapes behind one
// interface: a total count and a chunked stream of records.
type QuerySource interface {
	// Count resolves the total number of records the query matches.
	Count(ctx context.Context) (int64, error)
	// EachChunk streams records in chunks of at most size, calling fn for
	// each one. It stops as soon as fn returns false or an error.
	EachChunk(ctx context.Context, size int, fn ChunkFunc) error
	// Describe returns the resolved query text and its bound parameters for
	// display. Sources that do not execute SQL return an explanatory
	// pseudo-statement and nil binds.
	Describe() (query string, binds []any)
}

// TransactionalSource is the capability a QuerySource provides when it can
// delimit a transaction around the whole chunked loop. Rollback semantics
// belong to the data layer; the engine only marks the boundary.
type TransactionalSource interface {
	Transaction(ctx context.Context, fn func(QuerySource) error) error
}

// ActivityRecorder receives one entry per executed query while activity
// logging is active. It replaces any ambient, globally populated query log:
// the recorder is registered explicitly for the duration of one run.
type ActivityRecorder interface {
	Record(query string, binds []any, elapsed time.Duration)
}

// ObservableSource is the capability a QuerySource provides when it can
// report executed queries to an ActivityRecorder.
type ObservableSource interface {
	SetActivityRecorder(rec ActivityRecorder)
}

// Command is the contract a caller implements to drive a run. The four
// methods are mandatory; optional behavior is expressed through the
// capability interfaces below, asserted once when the run starts.
type Command interface {
	// Query returns the query source to iterate. A nil source is a setup
	// error and aborts the run before any processing.
	Query() QuerySource
	// HandleRow applies the per-record side effect. Any returned error is
	// routed through the active failure policy; it never crashes the loop.
	HandleRow(ctx context.Context, record *model.RecordHandle) error
	// RowName returns the singular display label for a record.
	RowName() string
	// RowNamePlural returns the plural display label for records.
	RowNamePlural() string
}

// Transactional marks a command that wants the chunked loop wrapped in a
// single transaction.
type Transactional interface {
	UseTransaction() bool
}

// ExceptionCollecting marks a command that wants per-record failures
// accumulated for a deferred summary report instead of stopping the run.
type ExceptionCollecting interface {
	CollectExceptions() bool
}

// ChunkPreparer is called with each whole chunk before per-record
// iteration, e.g. to preload associations.
type ChunkPreparer interface {
	PrepareChunk(ctx context.Context, chunk []*model.RecordHandle) error
}

// LifecycleHooks are called exactly once each, before the first row and
// after the last row, even when zero records match.
type LifecycleHooks interface {
	BeforeFirstRow(ctx context.Context) error
	AfterLastRow(ctx context.Context) error
}

// FirstQueryNotifier is called once, before the first chunk fetch, and only
// when at least one record matches.
type FirstQueryNotifier interface {
	BeforeFirstQuery(ctx context.Context) error
}

// Iterator lets a command replace the default paging strategy. The
// implementation must call fn with each chunk and stop fetching once fn
// returns false.
type Iterator interface {
	IterateOverQuery(ctx context.Context, source QuerySource, chunkSize int, fn ChunkFunc) error
}

// Prompter asks the operator a yes/no question. The default answer is used
// when the operator just presses return.
type Prompter interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// TableRenderer renders a small table of rows for terminal display, used by
// the final exception report.
type TableRenderer interface {
	RenderTable(w io.Writer, headers []string, rows [][]string)
}
