// Package recurrence implements the next-due computation for calendar- and
// completion-anchored schedules (spec §4.3).
package recurrence

import (
	"time"

	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
)

// NextDue computes the next due instant for pattern, given the task's last
// completion time (may be zero for a never-completed task), its creation
// time (used as the Calendar/Interval anchor fallback), and the evaluation
// instant "now" the schedule advances from.
func NextDue(pattern *model.RecurrencePattern, lastCompleted, createdAt, now time.Time) (time.Time, error) {
	if pattern == nil {
		return time.Time{}, errs.Validation("recurrence pattern is required")
	}

	var due time.Time
	var err error

	switch pattern.Mode {
	case model.RecurrenceCalendar:
		due, err = nextDueCalendar(pattern, createdAt, now)
	case model.RecurrenceCompletion:
		due, err = nextDueCompletion(pattern, lastCompleted)
	default:
		return time.Time{}, errs.Unsupported("unrecognized recurrence mode %q", pattern.Mode)
	}
	if err != nil {
		return time.Time{}, err
	}

	if pattern.TimeOfDay != nil {
		due = pattern.TimeOfDay.On(due)
	}
	return due, nil
}

func nextDueCalendar(p *model.RecurrencePattern, createdAt, now time.Time) (time.Time, error) {
	switch p.Type {
	case model.RecurrenceDaily:
		d := now.AddDate(0, 0, 1)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()), nil

	case model.RecurrenceWeekly:
		if p.DayOfWeek != nil {
			return nextWeekday(now, time.Weekday(*p.DayOfWeek)), nil
		}
		return now.AddDate(0, 0, 7), nil

	case model.RecurrenceMonthly:
		return addCalendarMonthClamped(now, 1), nil

	case model.RecurrenceInterval:
		anchor := createdAt
		if p.Anchor != nil {
			anchor = *p.Anchor
		}
		return nextIntervalInstant(anchor, now, p)

	default:
		return time.Time{}, errs.Unsupported("unrecognized recurrence type %q", p.Type)
	}
}

func nextDueCompletion(p *model.RecurrencePattern, lastCompleted time.Time) (time.Time, error) {
	switch p.Type {
	case model.RecurrenceInterval:
		dur, err := intervalDuration(p)
		if err != nil {
			return time.Time{}, err
		}
		return lastCompleted.Add(dur), nil
	case model.RecurrenceDaily:
		return lastCompleted.AddDate(0, 0, 1), nil
	case model.RecurrenceWeekly:
		return lastCompleted.AddDate(0, 0, 7), nil
	case model.RecurrenceMonthly:
		return addCalendarMonthClamped(lastCompleted, 1), nil
	default:
		return time.Time{}, errs.Unsupported("unrecognized recurrence type %q", p.Type)
	}
}

// nextWeekday returns the next occurrence of weekday strictly after now. If
// today matches, it skips to +7d (§4.3 "Skipped occurrences").
func nextWeekday(now time.Time, weekday time.Weekday) time.Time {
	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	d := now.AddDate(0, 0, daysAhead)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// addCalendarMonthClamped adds n calendar months to t, clamping the day to
// the target month's length when it would overflow (§9 Month arithmetic:
// Jan 31 -> Feb 28/29 -> Mar 31).
func addCalendarMonthClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	targetMonthIndex := int(m) - 1 + n
	targetYear := y + targetMonthIndex/12
	targetMonth := time.Month(targetMonthIndex%12 + 1)
	if targetMonthIndex%12 < 0 {
		targetMonth += 12
		targetYear--
	}
	lastDay := lastDayOfMonth(targetYear, targetMonth)
	if d > lastDay {
		d = lastDay
	}
	return time.Date(targetYear, targetMonth, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	lastOfThis := firstOfNext.AddDate(0, 0, -1)
	return lastOfThis.Day()
}

// nextIntervalInstant implements Calendar/Interval:
// anchor + ceil((now - anchor)/interval) * interval.
func nextIntervalInstant(anchor, now time.Time, p *model.RecurrencePattern) (time.Time, error) {
	dur, err := intervalDuration(p)
	if err != nil {
		return time.Time{}, err
	}
	if dur <= 0 {
		return time.Time{}, errs.Validation("recurrence interval must be positive")
	}
	elapsed := now.Sub(anchor)
	if elapsed <= 0 {
		return anchor.Add(dur), nil
	}
	steps := elapsed / dur
	if elapsed%dur != 0 {
		steps++
	}
	return anchor.Add(steps * dur), nil
}

func intervalDuration(p *model.RecurrencePattern) (time.Duration, error) {
	if p.Interval <= 0 {
		return 0, errs.Validation("recurrence interval must be a positive integer")
	}
	switch p.Unit {
	case model.UnitDays, "":
		return time.Duration(p.Interval) * 24 * time.Hour, nil
	case model.UnitWeeks:
		return time.Duration(p.Interval) * 7 * 24 * time.Hour, nil
	case model.UnitMonths:
		return time.Duration(p.Interval) * 30 * 24 * time.Hour, nil
	default:
		return 0, errs.Unsupported("unrecognized interval unit %q", p.Unit)
	}
}
