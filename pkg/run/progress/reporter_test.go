package progress_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	progress "github.com/tigerroll/stride/pkg/run/progress"
)

func TestReporterAdvanceRendersCounter(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf, false)

	r.Start(3, "user", "users")
	r.Advance()
	r.Advance()
	r.Finish()

	out := buf.String()
	assert.Contains(t, out, "0/3 users processed (0.0%)")
	assert.Contains(t, out, "1/3 user processed (33.3%)")
	assert.Contains(t, out, "2/3 users processed (66.7%)")
	assert.Equal(t, int64(2), r.Processed())
}

func TestReporterPauseHidesLine(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf, false)

	r.Start(2, "row", "rows")
	r.Advance()

	buf.Reset()
	r.Pause()
	r.Advance()
	assert.NotContains(t, buf.String(), "2/2")

	r.Resume()
	assert.Contains(t, buf.String(), "2/2 rows processed")
}

func TestReporterNestedPause(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf, false)

	r.Start(5, "row", "rows")
	r.Pause()
	r.Pause()

	buf.Reset()
	r.Resume()
	assert.Empty(t, strings.TrimSpace(buf.String()))

	r.Resume()
	assert.Contains(t, buf.String(), "0/5 rows processed")
}

func TestReporterInterruptRestoresDisplay(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf, false)

	r.Start(4, "row", "rows")
	r.Advance()
	r.Interrupt(func(w io.Writer) {
		fmt.Fprintln(w, "SELECT 1")
	})

	out := buf.String()
	assert.Contains(t, out, "SELECT 1")
	// The line is redrawn after the interrupt output.
	assert.Greater(t, strings.LastIndex(out, "1/4 rows processed"), strings.Index(out, "SELECT 1"))
}

func TestReporterMemoryAnnotation(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf, true)

	r.Start(1, "row", "rows")
	assert.Contains(t, buf.String(), "MiB")
}

func TestReporterFinishOnlyOnce(t *testing.T) {
	var buf bytes.Buffer
	r := progress.NewReporter(&buf, false)

	r.Start(1, "row", "rows")
	r.Advance()
	r.Finish()
	length := buf.Len()
	r.Finish()
	assert.Equal(t, length, buf.Len())
}
