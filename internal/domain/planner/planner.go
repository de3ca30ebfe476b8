// Package planner implements the daily planner: ordering, packing into
// working hours, and slot assignment (spec §4.5).
package planner

import (
	"sort"
	"time"

	"github.com/chronotask/chronotask/internal/domain/curve"
	"github.com/chronotask/chronotask/internal/domain/model"
)

// Options configures a planning run.
type Options struct {
	Limit             int
	IncludeTimeBlocks bool
	WorkHoursStart    model.ClockTime
	WorkHoursEnd      model.ClockTime
	DefaultEstimate   int // minutes, used when a task has no estimate
}

// Slot is a contiguous half-open interval within working hours assigned to
// a task.
type Slot struct {
	Start time.Time
	End   time.Time
}

// ScheduledTask is one entry in the plan's scheduled list.
type ScheduledTask struct {
	Task             *model.Task
	Slot             Slot
	EstimateMinutes  int
	IsDefaultEstimate bool
}

// UnscheduledTask is one entry in the plan's unscheduled list, with the
// reason it could not be placed.
type UnscheduledTask struct {
	Task   *model.Task
	Reason string
}

// Plan is the output of a planning run.
type Plan struct {
	Scheduled             []ScheduledTask
	Unscheduled           []UnscheduledTask
	WorkHoursStart        model.ClockTime
	WorkHoursEnd          model.ClockTime
	TotalScheduledMinutes int
	RemainingMinutes      int
}

const defaultEstimateMinutes = 30

// BuildPlan builds a Plan for tasks on day, evaluated at 'at' (normally day's
// planning instant), per §4.5's five-step algorithm. deps resolves
// dependency completion status for the Block gate.
func BuildPlan(tasks []*model.Task, at time.Time, opts Options, deps curve.DependencyStatus) *Plan {
	// Step 1: candidates = Open, non-Blocked tasks with priority > 0.
	ectx := curve.EvalContext{At: at, Deps: deps}
	type candidate struct {
		task     *model.Task
		priority float64
	}
	var candidates []candidate
	for _, t := range tasks {
		if t.Status != model.StatusOpen {
			continue
		}
		p := curve.Priority(t, ectx)
		if p > 0 {
			candidates = append(candidates, candidate{task: t, priority: p})
		}
	}

	// Step 2: sort by descending priority, stable by id.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority > candidates[j].priority
		}
		return candidates[i].task.ID < candidates[j].task.ID
	})

	// Step 3: truncate to limit.
	if opts.Limit > 0 && len(candidates) > opts.Limit {
		candidates = candidates[:opts.Limit]
	}

	plan := &Plan{
		WorkHoursStart: opts.WorkHoursStart,
		WorkHoursEnd:   opts.WorkHoursEnd,
	}

	if !opts.IncludeTimeBlocks {
		for _, c := range candidates {
			plan.Scheduled = append(plan.Scheduled, ScheduledTask{Task: c.task})
		}
		return plan
	}

	defaultEstimate := opts.DefaultEstimate
	if defaultEstimate <= 0 {
		defaultEstimate = defaultEstimateMinutes
	}

	dayBase := at
	workStart := opts.WorkHoursStart.On(dayBase)
	workEnd := opts.WorkHoursEnd.On(dayBase)
	workingMinutes := int(workEnd.Sub(workStart).Minutes())

	cursor := workStart

	// Step 4: greedy packing in priority order.
	for _, c := range candidates {
		estimate := defaultEstimate
		isDefault := true
		if c.task.EstimateMinutes != nil && *c.task.EstimateMinutes > 0 {
			estimate = *c.task.EstimateMinutes
			isDefault = false
		}

		slotStart, slotEnd, ok, reason := placeTask(c.task, cursor, workStart, workEnd, estimate)
		if !ok {
			plan.Unscheduled = append(plan.Unscheduled, UnscheduledTask{Task: c.task, Reason: reason})
			continue
		}

		plan.Scheduled = append(plan.Scheduled, ScheduledTask{
			Task:              c.task,
			Slot:              Slot{Start: slotStart, End: slotEnd},
			EstimateMinutes:   estimate,
			IsDefaultEstimate: isDefault,
		})
		cursor = slotEnd
	}

	plan.TotalScheduledMinutes = 0
	for _, s := range plan.Scheduled {
		plan.TotalScheduledMinutes += s.EstimateMinutes
	}
	plan.RemainingMinutes = workingMinutes - plan.TotalScheduledMinutes
	return plan
}

// placeTask finds where in [cursor, workEnd) a task of the given estimate
// can be placed, respecting any daily time-window overlap with the working
// day. Returns ok=false with a reason when it cannot fit.
func placeTask(t *model.Task, cursor, workStart, workEnd time.Time, estimateMinutes int) (time.Time, time.Time, bool, string) {
	segStart, segEnd := cursor, workEnd

	if w, ok := t.Window(); ok {
		overlapStart, overlapEnd, overlaps := windowOverlap(w, workStart, workEnd)
		if !overlaps {
			return time.Time{}, time.Time{}, false, "no fitting slot"
		}
		if overlapStart.After(segStart) {
			segStart = overlapStart
		}
		if overlapEnd.Before(segEnd) {
			segEnd = overlapEnd
		}
		if !segStart.Before(segEnd) {
			return time.Time{}, time.Time{}, false, "no fitting slot"
		}
	}

	estimate := time.Duration(estimateMinutes) * time.Minute
	slotEnd := segStart.Add(estimate)
	if slotEnd.After(segEnd) {
		if segEnd == workEnd {
			return time.Time{}, time.Time{}, false, "insufficient time"
		}
		return time.Time{}, time.Time{}, false, "no fitting slot"
	}
	return segStart, slotEnd, true, ""
}

// windowOverlap intersects a daily time window with the working-hours
// interval [workStart, workEnd), both on the same calendar day, honoring
// midnight-crossing semantics (I5). Only the portion of the window that
// falls within the working day is usable.
func windowOverlap(w model.Window, workStart, workEnd time.Time) (time.Time, time.Time, bool) {
	day := workStart
	start := w.Start.On(day)
	end := w.End.On(day)
	if w.CrossesMidnight() {
		end = end.AddDate(0, 0, 1)
	}

	if start.Before(workStart) {
		start = workStart
	}
	if end.After(workEnd) {
		end = workEnd
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
