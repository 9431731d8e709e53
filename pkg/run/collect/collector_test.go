package collect_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	collect "github.com/tigerroll/stride/pkg/run/collect"
	console "github.com/tigerroll/stride/pkg/run/console"
	model "github.com/tigerroll/stride/pkg/run/core/model"
)

type namedRecord struct{ name string }

func (r namedRecord) RecordLabel() string { return r.name }

func TestCollectorPreservesEncounterOrder(t *testing.T) {
	c := collect.NewCollector()
	c.Add(&model.RecordHandle{Value: namedRecord{"alice"}, Position: 0}, errors.New("boom"))
	c.Add(&model.RecordHandle{Position: 3}, errors.New("later"))

	require.Equal(t, 2, c.Len())
	exceptions := c.Exceptions()
	assert.Equal(t, "alice", exceptions[0].Label)
	assert.Equal(t, "boom", exceptions[0].Message)
	assert.Equal(t, "#4", exceptions[1].Label)
	assert.Equal(t, "later", exceptions[1].Message)
}

func TestCollectorAsError(t *testing.T) {
	c := collect.NewCollector()
	assert.NoError(t, c.AsError())

	cause := errors.New("boom")
	c.Add(&model.RecordHandle{Position: 0}, cause)

	err := c.AsError()
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "#1")
}

func TestCollectorReport(t *testing.T) {
	c := collect.NewCollector()
	c.Add(&model.RecordHandle{Value: namedRecord{"bob"}, Position: 1}, errors.New("conflict"))

	var buf bytes.Buffer
	c.Report(&buf, console.NewTabTableRenderer())

	out := buf.String()
	assert.Contains(t, out, "1 exception occurred during the run:")
	assert.Contains(t, out, "Record")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "errors.errorString")
	assert.Contains(t, out, "conflict")
}

func TestCollectorReportEmptyWritesNothing(t *testing.T) {
	c := collect.NewCollector()
	var buf bytes.Buffer
	c.Report(&buf, console.NewTabTableRenderer())
	assert.Zero(t, buf.Len())
}
