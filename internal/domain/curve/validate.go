package curve

import (
	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
)

// Validate checks I8 (curve well-formedness) plus the §9 rule that a
// Blocked curve's embedded dependency list must not duplicate the
// task-level list (the task-level list is authoritative).
func Validate(cfg model.CurveConfig, taskDeps []int64) error {
	switch cfg.Kind {
	case model.CurveLinear:
		p := cfg.Linear
		if p == nil {
			return errs.Validation("linear curve requires parameters")
		}
		if !p.Deadline.After(p.StartDate) {
			return errs.Validation("linear curve requires deadline > start_date")
		}
	case model.CurveExponential:
		p := cfg.Exponential
		if p == nil {
			return errs.Validation("exponential curve requires parameters")
		}
		if !p.Deadline.After(p.StartDate) {
			return errs.Validation("exponential curve requires deadline > start_date")
		}
		if p.Exponent != 0 && (p.Exponent < 1 || p.Exponent > 5) {
			return errs.Validation("exponential curve exponent must be in [1,5], got %v", p.Exponent)
		}
	case model.CurveHardWindow:
		p := cfg.HardWindow
		if p == nil {
			return errs.Validation("hard_window curve requires parameters")
		}
		if p.WindowEnd.Equal(p.WindowStart) {
			return errs.Validation("hard_window curve requires window_end != window_start")
		}
		if p.Priority != 0 && (p.Priority < 0 || p.Priority > 2) {
			return errs.Validation("hard_window curve priority must be in [0,2], got %v", p.Priority)
		}
	case model.CurveBlocked:
		p := cfg.Blocked
		if p == nil {
			return errs.Validation("blocked curve requires parameters")
		}
		if p.ThenCurve == nil {
			return errs.Validation("blocked curve requires then_curve")
		}
		if len(p.Dependencies) > 0 && len(taskDeps) > 0 {
			return errs.Validation("blocked curve dependencies must not duplicate the task-level dependencies list")
		}
		if err := Validate(*p.ThenCurve, taskDeps); err != nil {
			return err
		}
	case model.CurveAccumulator:
		p := cfg.Accumulator
		if p == nil {
			return errs.Validation("accumulator curve requires parameters")
		}
		if p.Recurrence == nil {
			return errs.Validation("accumulator curve requires a recurrence pattern")
		}
	default:
		return errs.Unsupported("unrecognized curve kind %q", cfg.Kind)
	}
	return nil
}
