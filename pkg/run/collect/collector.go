// Package collect accumulates per-record failures during a run and turns
// them into a final report: a table of label, error kind, and message,
// plus an aggregate error for the run outcome.
package collect

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	exception "github.com/tigerroll/stride/pkg/run/support/util/exception"
)

// CollectedException is one failure recorded during the run, preserving
// the record it came from and the concrete error type.
type CollectedException struct {
	Label   string
	Kind    string
	Message string
	Err     error
}

// Collector gathers record failures in encounter order.
type Collector struct {
	exceptions []CollectedException
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a failure for the given record handle.
func (c *Collector) Add(handle *model.RecordHandle, err error) {
	c.exceptions = append(c.exceptions, CollectedException{
		Label:   handle.Label(),
		Kind:    exception.KindOf(err),
		Message: exception.ExtractErrorMessage(err),
		Err:     err,
	})
}

// Len returns the number of collected failures.
func (c *Collector) Len() int {
	return len(c.exceptions)
}

// Exceptions returns the collected failures in encounter order.
func (c *Collector) Exceptions() []CollectedException {
	return c.exceptions
}

// AsError aggregates the collected failures into a single error, or nil
// when nothing was collected.
func (c *Collector) AsError() error {
	if len(c.exceptions) == 0 {
		return nil
	}
	var result *multierror.Error
	for _, e := range c.exceptions {
		result = multierror.Append(result, fmt.Errorf("%s: %w", e.Label, e.Err))
	}
	return result.ErrorOrNil()
}

// Report renders the collected failures as a table on w. It writes nothing
// when the collector is empty.
func (c *Collector) Report(w io.Writer, renderer port.TableRenderer) {
	if len(c.exceptions) == 0 {
		return
	}
	noun := "exceptions"
	if len(c.exceptions) == 1 {
		noun = "exception"
	}
	fmt.Fprintf(w, "\n%d %s occurred during the run:\n", len(c.exceptions), noun)

	rows := make([][]string, 0, len(c.exceptions))
	for _, e := range c.exceptions {
		rows = append(rows, []string{e.Label, e.Kind, e.Message})
	}
	renderer.RenderTable(w, []string{"Record", "Error", "Message"}, rows)
}
