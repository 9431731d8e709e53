package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "github.com/tigerroll/stride/pkg/run/core/model"
)

func TestRunTransitionsOnce(t *testing.T) {
	run := model.NewRun(model.Options{})
	assert.Equal(t, model.RunStatusRunning, run.Status)
	assert.NotEmpty(t, run.ID)

	run.MarkAsCompleted()
	assert.Equal(t, model.RunStatusCompleted, run.Status)

	// A terminal run never reverses.
	run.MarkAsFailed()
	assert.Equal(t, model.RunStatusCompleted, run.Status)
	run.MarkAsAborted()
	assert.Equal(t, model.RunStatusCompleted, run.Status)
}

func TestRunTotalAndCounter(t *testing.T) {
	run := model.NewRun(model.Options{})
	assert.False(t, run.TotalKnown)

	run.SetTotal(3)
	assert.True(t, run.TotalKnown)
	assert.EqualValues(t, 3, run.Total)

	run.Advance()
	run.Advance()
	assert.EqualValues(t, 2, run.Processed)
}

func TestOutcomeConstructors(t *testing.T) {
	done := model.CompletedOutcome()
	assert.Equal(t, model.RunStatusCompleted, done.Status)
	assert.Equal(t, model.ExitCodeSuccess, done.Code)

	aborted := model.AbortedOutcome("cancelled", model.ExitCodeFailure)
	assert.Equal(t, model.RunStatusAborted, aborted.Status)
	assert.Equal(t, model.ExitCodeFailure, aborted.Code)
	assert.Equal(t, "cancelled", aborted.Message)

	dump := model.AbortedOutcome("", model.ExitCodeSuccess)
	assert.Equal(t, model.ExitCodeSuccess, dump.Code)

	failed := model.FailedOutcome(assert.AnError)
	assert.Equal(t, model.RunStatusFailed, failed.Status)
	assert.Equal(t, model.ExitCodeFailure, failed.Code)
	assert.Equal(t, assert.AnError, failed.Err)
}

type labeledRecord struct{ name string }

func (r labeledRecord) RecordLabel() string { return r.name }

func TestRecordHandleLabel(t *testing.T) {
	withLabel := &model.RecordHandle{Value: labeledRecord{name: "user-42"}, Position: 7}
	assert.Equal(t, "user-42", withLabel.Label())

	plain := &model.RecordHandle{Value: struct{}{}, Position: 7}
	assert.Equal(t, "#8", plain.Label())
}
