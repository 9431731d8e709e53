package diff_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diff "github.com/tigerroll/stride/pkg/run/diff"
)

type account struct {
	Email  string
	Active bool
}

func (a *account) Fields() map[string]any {
	return map[string]any{"email": a.Email, "active": a.Active}
}

func TestCaptureCopiesSnapshot(t *testing.T) {
	acc := &account{Email: "A@X.COM", Active: true}

	before, ok := diff.Capture(acc)
	require.True(t, ok)

	acc.Email = "a@x.com"
	assert.Equal(t, "A@X.COM", before["email"])
}

func TestCaptureRequiresTrackable(t *testing.T) {
	_, ok := diff.Capture("plain string")
	assert.False(t, ok)
}

func TestChangesSortedByField(t *testing.T) {
	before := map[string]any{"email": "A@X.COM", "active": true, "name": "Ann"}
	after := map[string]any{"email": "a@x.com", "active": false, "name": "Ann"}

	changes := diff.Changes(before, after)
	require.Len(t, changes, 2)
	assert.Equal(t, "active", changes[0].Field)
	assert.Equal(t, "email", changes[1].Field)
	assert.Equal(t, "A@X.COM", changes[1].Before)
	assert.Equal(t, "a@x.com", changes[1].After)
}

func TestChangesFieldPresentOnOneSide(t *testing.T) {
	changes := diff.Changes(map[string]any{"legacy": 1}, map[string]any{})
	require.Len(t, changes, 1)
	assert.Equal(t, "legacy", changes[0].Field)
	assert.Nil(t, changes[0].After)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	diff.Render(&buf, "alice", []diff.Change{
		{Field: "email", Before: "A@X.COM", After: "a@x.com"},
	})

	out := buf.String()
	assert.Contains(t, out, "Changes to alice:")
	assert.Contains(t, out, `email: "A@X.COM" -> "a@x.com"`)
}

func TestRenderEmptyWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	diff.Render(&buf, "alice", nil)
	assert.Zero(t, buf.Len())
}
