package curve

import (
	"time"

	"github.com/chronotask/chronotask/internal/domain/model"
	"github.com/chronotask/chronotask/internal/domain/recurrence"
)

// DefaultDeadlineOffset is added to "now" when a task is created without an
// explicit deadline and curve inference falls through to Linear.
const DefaultDeadlineOffset = 7 * 24 * time.Hour

// Infer selects a default CurveConfig for a task created without an
// explicit curve_config, per §4.2 "Defaults / inference":
//
//	HardWindow  if a time window is set
//	Blocked     (wrapping Linear) if dependencies exist
//	Accumulator if recurrence is set
//	Linear(now, deadline)  otherwise, deadline = now + 7d if none given
func Infer(hasWindow bool, windowStart, windowEnd *model.ClockTime, deadline *time.Time, dependencies []int64, pattern *model.RecurrencePattern, now time.Time) model.CurveConfig {
	switch {
	case hasWindow && windowStart != nil && windowEnd != nil:
		return model.CurveConfig{
			Kind: model.CurveHardWindow,
			HardWindow: &model.HardWindowParams{
				WindowStart: windowStart.On(now),
				WindowEnd:   windowEnd.On(now),
				Priority:    model.DefaultHardWindowPriority,
			},
		}
	case len(dependencies) > 0:
		d := deadline
		if d == nil {
			dl := now.Add(DefaultDeadlineOffset)
			d = &dl
		}
		then := model.CurveConfig{
			Kind: model.CurveLinear,
			Linear: &model.LinearParams{
				StartDate: now,
				Deadline:  *d,
			},
		}
		return model.CurveConfig{
			Kind: model.CurveBlocked,
			Blocked: &model.BlockedParams{
				ThenCurve: &then,
			},
		}
	case pattern != nil:
		// §9 Open Question: initialize next_due_at at creation using §4.3
		// with last_completed = created_at.
		nextDue, err := recurrence.NextDue(pattern, now, now, now)
		if err != nil {
			nextDue = now
		}
		return model.CurveConfig{
			Kind: model.CurveAccumulator,
			Accumulator: &model.AccumulatorParams{
				Recurrence:      pattern,
				LastCompletedAt: &now,
				NextDueAt:       &nextDue,
				BuildupRate:     model.DefaultBuildupRate,
			},
		}
	default:
		d := deadline
		if d == nil {
			dl := now.Add(DefaultDeadlineOffset)
			d = &dl
		}
		return model.CurveConfig{
			Kind: model.CurveLinear,
			Linear: &model.LinearParams{
				StartDate: now,
				Deadline:  *d,
			},
		}
	}
}
