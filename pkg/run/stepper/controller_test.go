package stepper_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/tigerroll/stride/pkg/run/core/model"
	stepper "github.com/tigerroll/stride/pkg/run/stepper"
	exception "github.com/tigerroll/stride/pkg/run/support/util/exception"
)

type fakePrompter struct {
	answer   bool
	err      error
	question string
	calls    int
}

func (p *fakePrompter) Confirm(question string, defaultYes bool) (bool, error) {
	p.question = question
	p.calls++
	return p.answer, p.err
}

func TestControllerDisabledNeverPrompts(t *testing.T) {
	prompter := &fakePrompter{}
	c := stepper.NewController(false, prompter)

	err := c.ConfirmRecord(&model.RecordHandle{Position: 0})
	require.NoError(t, err)
	assert.Zero(t, prompter.calls)
	assert.False(t, c.Enabled())
}

func TestControllerAccept(t *testing.T) {
	prompter := &fakePrompter{answer: true}
	c := stepper.NewController(true, prompter)

	err := c.ConfirmRecord(&model.RecordHandle{Position: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, prompter.calls)
	assert.Equal(t, "Process #5?", prompter.question)
}

func TestControllerDeclineAborts(t *testing.T) {
	prompter := &fakePrompter{answer: false}
	c := stepper.NewController(true, prompter)

	err := c.ConfirmRecord(&model.RecordHandle{Position: 0})
	abortErr, ok := exception.AsAbort(err)
	require.True(t, ok)
	assert.Equal(t, model.ExitCodeFailure, abortErr.Code)
	assert.Equal(t, "Run cancelled by operator.", abortErr.Message)
}

func TestControllerPromptError(t *testing.T) {
	prompter := &fakePrompter{err: errors.New("tty closed")}
	c := stepper.NewController(true, prompter)

	err := c.ConfirmRecord(&model.RecordHandle{Position: 0})
	require.Error(t, err)
	_, ok := exception.AsAbort(err)
	assert.False(t, ok)
}
