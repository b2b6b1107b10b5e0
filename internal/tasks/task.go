// Package tasks holds the pending to-do items shown by the status-bar widget
// and the ordering and text rendering applied to them.
package tasks

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// TimestampLayout is the layout of the due and updated fields returned by Google Tasks.
const TimestampLayout = "2006-01-02T15:04:05.999999999Z"

// Task is one pending to-do item. A zero Due or Updated means the field was
// absent and sorts after every real timestamp.
type Task struct {
	Title   string
	Due     time.Time
	Updated time.Time
}

// HasDue reports whether the task carries a due date.
func (t Task) HasDue() bool {
	return !t.Due.IsZero()
}

// ParseTimestamp parses a Google Tasks timestamp in UTC. An empty string yields
// the zero time. The fractional seconds are mandatory.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if !hasFraction(s) {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: missing fractional seconds", s)
	}
	ts, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return ts, nil
}

// hasFraction reports whether s ends in "." followed by 1 to 9 digits and "Z".
func hasFraction(s string) bool {
	body, ok := strings.CutSuffix(s, "Z")
	if !ok {
		return false
	}
	dot := strings.LastIndexByte(body, '.')
	if dot < 0 {
		return false
	}
	frac := body[dot+1:]
	if len(frac) == 0 || len(frac) > 9 {
		return false
	}
	for _, r := range frac {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// compareTime orders timestamps ascending with the zero time last.
func compareTime(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	default:
		return a.Compare(b)
	}
}

// Compare orders tasks by due date, then by last update.
func Compare(a, b Task) int {
	return cmp.Or(compareTime(a.Due, b.Due), compareTime(a.Updated, b.Updated))
}

// Sort orders tasks in place by Compare, keeping the input order of ties.
func Sort(ts []Task) {
	slices.SortStableFunc(ts, Compare)
}
