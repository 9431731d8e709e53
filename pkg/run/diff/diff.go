// Package diff captures before/after snapshots of records that expose
// their tracked fields, and renders the field-level changes a handler
// made.
package diff

import (
	"fmt"
	"io"
	"sort"
)

// Trackable is implemented by records that can report the fields to
// compare across a handler invocation.
type Trackable interface {
	Fields() map[string]any
}

// Change is one field whose value differed between the snapshots.
type Change struct {
	Field  string
	Before any
	After  any
}

// Capture snapshots the record's tracked fields. The second return is
// false when the record does not implement Trackable. The returned map is
// a copy, so later mutation of the record does not disturb the snapshot.
func Capture(record any) (map[string]any, bool) {
	trackable, ok := record.(Trackable)
	if !ok {
		return nil, false
	}
	fields := trackable.Fields()
	snapshot := make(map[string]any, len(fields))
	for k, v := range fields {
		snapshot[k] = v
	}
	return snapshot, true
}

// Changes compares two snapshots and returns the differing fields sorted
// by field name. Fields present in only one snapshot count as changed.
func Changes(before, after map[string]any) []Change {
	names := make(map[string]struct{}, len(before))
	for k := range before {
		names[k] = struct{}{}
	}
	for k := range after {
		names[k] = struct{}{}
	}

	changes := make([]Change, 0)
	for name := range names {
		b, a := before[name], after[name]
		if fmt.Sprintf("%#v", b) != fmt.Sprintf("%#v", a) {
			changes = append(changes, Change{Field: name, Before: b, After: a})
		}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

// Render writes the changes for the labelled record on w. Nothing is
// written when there are no changes.
func Render(w io.Writer, label string, changes []Change) {
	if len(changes) == 0 {
		return
	}
	fmt.Fprintf(w, "Changes to %s:\n", label)
	for _, c := range changes {
		fmt.Fprintf(w, "  %s: %#v -> %#v\n", c.Field, c.Before, c.After)
	}
}
