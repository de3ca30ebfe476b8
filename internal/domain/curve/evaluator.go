// Package curve implements the priority curve family and evaluator
// described in spec §4.2: a pure function of a task snapshot, an
// evaluation instant, and an observed dependency-status lookup.
//
// Dispatch mirrors the teacher's ImplementationStrategy shape
// (CanHandle/Execute/GetName) generalized to a closed switch over
// model.CurveKind, since CurveConfig is a tagged union, not an open
// interface hierarchy: adding a variant must force every call site that
// switches on Kind to be updated, which an interface registry would hide.
package curve

import (
	"math"
	"time"

	"github.com/chronotask/chronotask/internal/domain/model"
)

// DependencyStatus reports whether the dependency with the given id is
// Completed. The evaluator never reads a store directly; callers supply
// this closure from whatever snapshot they hold.
type DependencyStatus func(taskID int64) bool

// EvalContext carries every input the evaluator needs beyond the task
// itself, keeping Evaluate a pure function of explicit arguments.
type EvalContext struct {
	At   time.Time
	Deps DependencyStatus
}

// Priority computes priority(task, t) per §4.2: the two universal gates,
// then variant-specific math. Returns a value in [0, +Inf).
func Priority(t *model.Task, ectx EvalContext) float64 {
	if blocked(t, ectx.Deps) {
		return 0
	}
	if w, ok := t.Window(); ok && !w.Contains(ectx.At) {
		return 0
	}
	return dispatch(t.CurveConfig, ectx)
}

// blocked implements the block gate: priority is 0 if any dependency is
// not Completed, regardless of variant.
func blocked(t *model.Task, deps DependencyStatus) bool {
	if len(t.Dependencies) == 0 || deps == nil {
		return false
	}
	for _, dep := range t.Dependencies {
		if !deps(dep) {
			return true
		}
	}
	return false
}

func dispatch(cfg model.CurveConfig, ectx EvalContext) float64 {
	switch cfg.Kind {
	case model.CurveLinear:
		return evalLinear(cfg.Linear, ectx.At)
	case model.CurveExponential:
		return evalExponential(cfg.Exponential, ectx.At)
	case model.CurveHardWindow:
		return evalHardWindow(cfg.HardWindow, ectx.At)
	case model.CurveBlocked:
		return evalBlocked(cfg.Blocked, ectx)
	case model.CurveAccumulator:
		return evalAccumulator(cfg.Accumulator, ectx.At)
	default:
		return 0
	}
}

// linearRatio computes the shared Linear/Exponential shape: 0 before start,
// the overdue tail after the deadline (continuing at the pre-deadline
// slope), and the raw (unexponentiated) [0,1) ratio in between.
func linearRatio(start, deadline, now time.Time) (ratio float64, overdue bool) {
	s, e, n := start.UnixMilli(), deadline.UnixMilli(), now.UnixMilli()
	span := e - s
	if n < s {
		return 0, false
	}
	if n > e {
		return 1 + float64(n-e)/float64(span), true
	}
	return float64(n-s) / float64(span), false
}

func evalLinear(p *model.LinearParams, now time.Time) float64 {
	if p == nil {
		return 0
	}
	ratio, _ := linearRatio(p.StartDate, p.Deadline, now)
	return ratio
}

func evalExponential(p *model.ExponentialParams, now time.Time) float64 {
	if p == nil {
		return 0
	}
	ratio, overdue := linearRatio(p.StartDate, p.Deadline, now)
	if overdue || ratio == 0 {
		return ratio
	}
	exp := p.Exponent
	if exp == 0 {
		exp = model.DefaultExponent
	}
	return math.Pow(ratio, exp)
}

func evalHardWindow(p *model.HardWindowParams, now time.Time) float64 {
	if p == nil {
		return 0
	}
	if now.Before(p.WindowStart) || now.After(p.WindowEnd) {
		return 0
	}
	pr := p.Priority
	if pr == 0 {
		pr = model.DefaultHardWindowPriority
	}
	return pr
}

func evalBlocked(p *model.BlockedParams, ectx EvalContext) float64 {
	if p == nil || p.ThenCurve == nil {
		return 0
	}
	if ectx.Deps != nil {
		for _, dep := range p.Dependencies {
			if !ectx.Deps(dep) {
				return 0
			}
		}
	}
	return dispatch(*p.ThenCurve, ectx)
}

func evalAccumulator(p *model.AccumulatorParams, now time.Time) float64 {
	if p == nil || p.Recurrence == nil {
		return 0
	}
	switch p.Recurrence.Mode {
	case model.RecurrenceCompletion:
		return evalAccumulatorCompletion(p, now)
	default:
		return evalAccumulatorCalendar(p, now)
	}
}

// evalAccumulatorCompletion implements the Completion-mode stepped output.
func evalAccumulatorCompletion(p *model.AccumulatorParams, now time.Time) float64 {
	if p.LastCompletedAt == nil {
		return 0
	}
	expected := p.Recurrence.ExpectedInterval()
	if expected <= 0 {
		return 0
	}
	elapsed := now.Sub(*p.LastCompletedAt)
	ratio := float64(elapsed) / float64(expected)
	switch {
	case ratio < 0.5:
		return 0.1
	case ratio < 0.8:
		return 0.3
	case ratio < 1.0:
		return 0.6
	case ratio < 1.2:
		return 0.9
	default:
		return 1.0
	}
}

// evalAccumulatorCalendar implements the Calendar-mode ramp.
func evalAccumulatorCalendar(p *model.AccumulatorParams, now time.Time) float64 {
	if p.NextDueAt == nil {
		return 0
	}
	expected := p.Recurrence.ExpectedInterval()
	if expected <= 0 {
		return 0
	}
	daysUntil := p.NextDueAt.Sub(now).Hours() / 24

	half := expected.Hours() / 24 / 2 // half the interval, in days
	switch {
	case daysUntil > half:
		return 0.2
	case daysUntil < 0:
		v := 1.0 + 0.1*math.Abs(daysUntil)
		if v > 1.5 {
			v = 1.5
		}
		return v
	default:
		// Linear ramp 0.2 -> 1.0 across the second half of the interval:
		// daysUntil goes from half down to 0, output goes from 0.2 to 1.0.
		if half == 0 {
			return 1.0
		}
		progressed := (half - daysUntil) / half
		return 0.2 + progressed*0.8
	}
}
