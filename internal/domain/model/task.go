package model

import "time"

// Task is the central entity: identity, curve config, dependencies, and the
// fields recorded in §3. Priority is never stored — it is derived at read
// time by internal/domain/curve.
type Task struct {
	ID       int64
	Title    string
	Project  string
	BucketID *int64

	// Tags is kept as given, in insertion order for display, hence []string
	// rather than map[string]struct{}; duplicate tags are not removed.
	Tags []string

	Notes string
	Color string

	Deadline         *time.Time
	EstimateMinutes  *int
	RecurrencePattern *RecurrencePattern

	WindowStart *ClockTime
	WindowEnd   *ClockTime

	// Dependencies is an ordered sequence of task ids; duplicates are
	// rejected at validation (I1).
	Dependencies []int64

	CurveConfig CurveConfig

	Status Status

	LastCompletedAt *time.Time
	NextDueAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the task's daily time window, if any.
func (t *Task) Window() (Window, bool) {
	if t.WindowStart == nil || t.WindowEnd == nil {
		return Window{}, false
	}
	if t.WindowStart.Equal(*t.WindowEnd) {
		return Window{}, false
	}
	return Window{Start: *t.WindowStart, End: *t.WindowEnd}, true
}

// IsRecurring reports whether the task has a recurrence pattern.
func (t *Task) IsRecurring() bool { return t.RecurrencePattern != nil }

// HasDependency reports whether id appears in t.Dependencies.
func (t *Task) HasDependency(id int64) bool {
	for _, d := range t.Dependencies {
		if d == id {
			return true
		}
	}
	return false
}
