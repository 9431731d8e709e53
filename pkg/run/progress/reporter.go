// Package progress renders the incremental progress line of a run: a
// monotonic counter against a known total, with pause/resume support so
// interleaved output (query traces, diffs, prompts) never corrupts the
// display.
package progress

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"
)

// Reporter tracks and renders run progress. It is single-writer: exactly
// one record is active at a time, so no locking is needed; the pause depth
// only guards against nested pause/resume during interrupts.
type Reporter struct {
	out        io.Writer
	showMemory bool

	total     int64
	processed int64
	singular  string
	plural    string

	started    bool
	finished   bool
	pauseDepth int
	startedAt  time.Time
	lastWidth  int
}

// NewReporter creates a Reporter writing to out. When showMemory is true
// each rendered line is annotated with current process memory usage.
func NewReporter(out io.Writer, showMemory bool) *Reporter {
	return &Reporter{out: out, showMemory: showMemory}
}

// Start begins the display for a run of total records. The singular and
// plural labels name the record type in the rendered line.
func (r *Reporter) Start(total int64, singular, plural string) {
	r.total = total
	r.processed = 0
	r.singular = singular
	r.plural = plural
	r.started = true
	r.finished = false
	r.pauseDepth = 0
	r.startedAt = time.Now()
	r.render()
}

// Processed returns the current counter value.
func (r *Reporter) Processed() int64 {
	return r.processed
}

// Elapsed returns the wall-clock time since Start.
func (r *Reporter) Elapsed() time.Duration {
	if r.startedAt.IsZero() {
		return 0
	}
	return time.Since(r.startedAt)
}

// Advance increments the counter by one and redraws. The counter only ever
// increases.
func (r *Reporter) Advance() {
	r.processed++
	if r.started && r.pauseDepth == 0 {
		r.render()
	}
}

// Pause hides the progress line so other output can be printed. Calls
// nest: the display stays hidden until every Pause has been matched by a
// Resume.
func (r *Reporter) Pause() {
	if !r.started || r.finished {
		return
	}
	if r.pauseDepth == 0 {
		r.clearLine()
	}
	r.pauseDepth++
}

// Resume restores the progress line after a matching Pause. Unbalanced
// calls are ignored.
func (r *Reporter) Resume() {
	if !r.started || r.finished || r.pauseDepth == 0 {
		return
	}
	r.pauseDepth--
	if r.pauseDepth == 0 {
		r.render()
	}
}

// Interrupt executes fn while the progress line is temporarily hidden,
// then restores it. fn may itself pause and resume without corrupting the
// display.
func (r *Reporter) Interrupt(fn func(w io.Writer)) {
	r.Pause()
	fn(r.out)
	r.Resume()
}

// Finish terminates the display, leaving the final counter on its own
// line. Further Advance calls keep counting but no longer draw.
func (r *Reporter) Finish() {
	if !r.started || r.finished {
		return
	}
	r.pauseDepth = 0
	r.render()
	fmt.Fprintln(r.out)
	r.finished = true
}

func (r *Reporter) render() {
	label := r.plural
	if r.processed == 1 {
		label = r.singular
	}
	line := fmt.Sprintf("%d/%d %s processed", r.processed, r.total, label)
	if r.total > 0 {
		line += fmt.Sprintf(" (%.1f%%)", float64(r.processed)/float64(r.total)*100)
	}
	if r.showMemory {
		line += " [" + memoryUsage() + "]"
	}

	// Pad with spaces so a shorter line fully overwrites the previous one.
	padding := ""
	if w := len(line); w < r.lastWidth {
		padding = strings.Repeat(" ", r.lastWidth-w)
	}
	r.lastWidth = len(line)
	fmt.Fprint(r.out, "\r"+line+padding)
}

func (r *Reporter) clearLine() {
	fmt.Fprint(r.out, "\r"+strings.Repeat(" ", r.lastWidth)+"\r")
	r.lastWidth = 0
}

// memoryUsage formats the current heap allocation for display.
func memoryUsage() string {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return fmt.Sprintf("mem %.1f MiB", float64(stats.HeapAlloc)/(1024*1024))
}
