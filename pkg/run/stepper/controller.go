// Package stepper implements step-confirmation mode: when enabled, the
// operator is asked before each record whether to process it, and a
// declined prompt cancels the whole run.
package stepper

import (
	"fmt"

	port "github.com/tigerroll/stride/pkg/run/core/application/port"
	model "github.com/tigerroll/stride/pkg/run/core/model"
	exception "github.com/tigerroll/stride/pkg/run/support/util/exception"
)

// Controller gates record processing behind an interactive confirmation.
// A disabled controller approves everything without prompting.
type Controller struct {
	enabled  bool
	prompter port.Prompter
}

// NewController creates a Controller. When enabled is false every
// confirmation succeeds immediately.
func NewController(enabled bool, prompter port.Prompter) *Controller {
	return &Controller{enabled: enabled, prompter: prompter}
}

// Enabled reports whether step-confirmation is active.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// ConfirmRecord asks the operator whether the record should be processed.
// The prompt defaults to yes; a declined prompt returns an abort error that
// cancels the run.
func (c *Controller) ConfirmRecord(handle *model.RecordHandle) error {
	if !c.enabled {
		return nil
	}
	ok, err := c.prompter.Confirm(fmt.Sprintf("Process %s?", handle.Label()), true)
	if err != nil {
		return fmt.Errorf("step confirmation failed: %w", err)
	}
	if !ok {
		return exception.Abort("Run cancelled by operator.")
	}
	return nil
}
