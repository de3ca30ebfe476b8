package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
)

func TestNextDue_RejectsNilPattern(t *testing.T) {
	_, err := NextDue(nil, time.Time{}, time.Time{}, time.Now())
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestNextDue_CalendarDaily(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCalendar, Type: model.RecurrenceDaily}

	due, err := NextDue(pattern, time.Time{}, now, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), due)
}

func TestNextDue_CalendarWeeklyWithDayOfWeek(t *testing.T) {
	// 2026-01-01 is a Thursday (weekday 4).
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	monday := 1
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCalendar, Type: model.RecurrenceWeekly, DayOfWeek: &monday}

	due, err := NextDue(pattern, time.Time{}, now, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), due)
	assert.Equal(t, time.Monday, due.Weekday())
}

func TestNextDue_CalendarWeeklySkipsToNextWeekWhenTodayMatches(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC) // Thursday
	thursday := 4
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCalendar, Type: model.RecurrenceWeekly, DayOfWeek: &thursday}

	due, err := NextDue(pattern, time.Time{}, now, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC), due)
}

func TestNextDue_CalendarMonthlyClampsShortMonth(t *testing.T) {
	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCalendar, Type: model.RecurrenceMonthly}

	due, err := NextDue(pattern, time.Time{}, now, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), due)
}

func TestNextDue_CalendarIntervalUsesCreatedAtAnchor(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := createdAt.Add(25 * time.Hour) // just past the first 1-day step
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCalendar, Type: model.RecurrenceInterval, Interval: 1, Unit: model.UnitDays}

	due, err := NextDue(pattern, time.Time{}, createdAt, now)
	require.NoError(t, err)
	assert.Equal(t, createdAt.Add(2*24*time.Hour), due)
}

func TestNextDue_CalendarIntervalExplicitAnchor(t *testing.T) {
	anchor := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := anchor.Add(3*24*time.Hour + time.Minute)
	pattern := &model.RecurrencePattern{
		Mode: model.RecurrenceCalendar, Type: model.RecurrenceInterval,
		Interval: 1, Unit: model.UnitDays, Anchor: &anchor,
	}

	due, err := NextDue(pattern, time.Time{}, createdAt, now)
	require.NoError(t, err)
	assert.Equal(t, anchor.Add(4*24*time.Hour), due)
}

func TestNextDue_CalendarIntervalBeforeAnchorReturnsFirstStep(t *testing.T) {
	anchor := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	now := anchor.Add(-time.Hour)
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCalendar, Type: model.RecurrenceInterval, Interval: 2, Unit: model.UnitDays, Anchor: &anchor}

	due, err := NextDue(pattern, time.Time{}, anchor, now)
	require.NoError(t, err)
	assert.Equal(t, anchor.Add(2*24*time.Hour), due)
}

func TestNextDue_CompletionInterval(t *testing.T) {
	last := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCompletion, Type: model.RecurrenceInterval, Interval: 3, Unit: model.UnitWeeks}

	due, err := NextDue(pattern, last, time.Time{}, last.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, last.Add(21*24*time.Hour), due)
}

func TestNextDue_CompletionDaily(t *testing.T) {
	last := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCompletion, Type: model.RecurrenceDaily}

	due, err := NextDue(pattern, last, time.Time{}, last)
	require.NoError(t, err)
	assert.Equal(t, last.AddDate(0, 0, 1), due)
}

func TestNextDue_CompletionMonthlyClamps(t *testing.T) {
	last := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCompletion, Type: model.RecurrenceMonthly}

	due, err := NextDue(pattern, last, time.Time{}, last)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), due)
}

func TestNextDue_TimeOfDayOverridesClock(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	tod := model.ClockTime{Hour: 9, Minute: 30}
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCalendar, Type: model.RecurrenceDaily, TimeOfDay: &tod}

	due, err := NextDue(pattern, time.Time{}, now, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC), due)
}

func TestNextDue_UnsupportedModeRejected(t *testing.T) {
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceMode("bogus"), Type: model.RecurrenceDaily}
	_, err := NextDue(pattern, time.Time{}, time.Time{}, time.Now())
	require.Error(t, err)
	assert.True(t, errs.IsUnsupported(err))
}

func TestNextDue_CompletionIntervalRequiresPositiveInterval(t *testing.T) {
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCompletion, Type: model.RecurrenceInterval, Interval: 0}
	_, err := NextDue(pattern, time.Now(), time.Time{}, time.Now())
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}
