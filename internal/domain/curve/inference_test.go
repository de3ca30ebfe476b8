package curve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotask/chronotask/internal/domain/model"
)

func TestInfer_HardWindowWhenWindowSet(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ws, we := model.ClockTime{Hour: 9}, model.ClockTime{Hour: 17}
	cfg := Infer(true, &ws, &we, nil, nil, nil, now)
	assert.Equal(t, model.CurveHardWindow, cfg.Kind)
	require.NotNil(t, cfg.HardWindow)
}

func TestInfer_BlockedWhenDependenciesSet(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Infer(false, nil, nil, nil, []int64{1, 2}, nil, now)
	assert.Equal(t, model.CurveBlocked, cfg.Kind)
	require.NotNil(t, cfg.Blocked)
	require.NotNil(t, cfg.Blocked.ThenCurve)
	assert.Equal(t, model.CurveLinear, cfg.Blocked.ThenCurve.Kind)
}

func TestInfer_AccumulatorWhenRecurrenceSet(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCompletion, Type: model.RecurrenceInterval, Interval: 3, Unit: model.UnitDays}
	cfg := Infer(false, nil, nil, nil, nil, pattern, now)
	assert.Equal(t, model.CurveAccumulator, cfg.Kind)
	require.NotNil(t, cfg.Accumulator)
	assert.Equal(t, pattern, cfg.Accumulator.Recurrence)
}

func TestInfer_LinearDefault(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Infer(false, nil, nil, nil, nil, nil, now)
	assert.Equal(t, model.CurveLinear, cfg.Kind)
	require.NotNil(t, cfg.Linear)
	assert.Equal(t, now, cfg.Linear.StartDate)
	assert.Equal(t, now.Add(DefaultDeadlineOffset), cfg.Linear.Deadline)
}

func TestInfer_LinearWithExplicitDeadline(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := now.Add(48 * time.Hour)
	cfg := Infer(false, nil, nil, &deadline, nil, nil, now)
	assert.Equal(t, deadline, cfg.Linear.Deadline)
}
