package sqllog

import (
	"fmt"
	"io"
	"sync"
	"time"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
)

// Entry is one recorded database statement with its bind values and
// execution time.
type Entry struct {
	Query   string
	Binds   []any
	Elapsed time.Duration
}

// ActivityLog buffers database statements observed during record
// processing so they can be flushed to the terminal between progress
// updates. It is safe for concurrent use.
type ActivityLog struct {
	mu      sync.Mutex
	entries []Entry
}

// NewActivityLog creates an empty ActivityLog.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

// Record implements port.ActivityRecorder.
func (l *ActivityLog) Record(query string, binds []any, elapsed time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Query: query, Binds: binds, Elapsed: elapsed})
}

// Drain returns the buffered entries in recording order and empties the
// buffer.
func (l *ActivityLog) Drain() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	drained := l.entries
	l.entries = nil
	return drained
}

// Len returns the number of buffered entries.
func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

var _ port.ActivityRecorder = (*ActivityLog)(nil)

// Render writes the entry on w as a single annotated line with binds
// interpolated as literals.
func (e Entry) Render(w io.Writer) {
	fmt.Fprintf(w, "SQL (%.1fms)  %s\n", float64(e.Elapsed.Microseconds())/1000, FormatSQL(e.Query, e.Binds))
}
