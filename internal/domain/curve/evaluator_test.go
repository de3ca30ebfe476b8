package curve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chronotask/chronotask/internal/domain/model"
)

func newTask(cfg model.CurveConfig) *model.Task {
	return &model.Task{ID: 1, Status: model.StatusOpen, CurveConfig: cfg}
}

func TestPriority_Linear(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := start.Add(10 * 24 * time.Hour)
	cfg := model.CurveConfig{Kind: model.CurveLinear, Linear: &model.LinearParams{StartDate: start, Deadline: deadline}}
	task := newTask(cfg)

	before := Priority(task, EvalContext{At: start.Add(-time.Hour)})
	assert.Equal(t, 0.0, before)

	mid := Priority(task, EvalContext{At: start.Add(5 * 24 * time.Hour)})
	assert.InDelta(t, 0.5, mid, 0.001)

	after := Priority(task, EvalContext{At: deadline.Add(24 * time.Hour)})
	assert.Greater(t, after, 1.0)
}

func TestPriority_Exponential(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := start.Add(10 * 24 * time.Hour)
	cfg := model.CurveConfig{Kind: model.CurveExponential, Exponential: &model.ExponentialParams{StartDate: start, Deadline: deadline, Exponent: 2}}
	task := newTask(cfg)

	mid := Priority(task, EvalContext{At: start.Add(5 * 24 * time.Hour)})
	assert.InDelta(t, 0.25, mid, 0.001)
}

func TestPriority_HardWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	cfg := model.CurveConfig{Kind: model.CurveHardWindow, HardWindow: &model.HardWindowParams{WindowStart: start, WindowEnd: end, Priority: 1.5}}
	task := newTask(cfg)

	assert.Equal(t, 0.0, Priority(task, EvalContext{At: start.Add(-time.Minute)}))
	assert.Equal(t, 1.5, Priority(task, EvalContext{At: start.Add(time.Hour)}))
	assert.Equal(t, 0.0, Priority(task, EvalContext{At: end.Add(time.Minute)}))
}

func TestPriority_BlockGate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := start.Add(10 * 24 * time.Hour)
	cfg := model.CurveConfig{Kind: model.CurveLinear, Linear: &model.LinearParams{StartDate: start, Deadline: deadline}}
	task := newTask(cfg)
	task.Dependencies = []int64{99}

	notDone := Priority(task, EvalContext{At: start.Add(5 * 24 * time.Hour), Deps: func(int64) bool { return false }})
	assert.Equal(t, 0.0, notDone)

	done := Priority(task, EvalContext{At: start.Add(5 * 24 * time.Hour), Deps: func(int64) bool { return true }})
	assert.Greater(t, done, 0.0)
}

func TestPriority_DailyWindowGate(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := start.Add(10 * 24 * time.Hour)
	cfg := model.CurveConfig{Kind: model.CurveLinear, Linear: &model.LinearParams{StartDate: start, Deadline: deadline}}
	task := newTask(cfg)
	ws, we := model.ClockTime{Hour: 9}, model.ClockTime{Hour: 17}
	task.WindowStart, task.WindowEnd = &ws, &we

	inside := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	outside := time.Date(2026, 1, 6, 20, 0, 0, 0, time.UTC)

	assert.Greater(t, Priority(task, EvalContext{At: inside}), 0.0)
	assert.Equal(t, 0.0, Priority(task, EvalContext{At: outside}))
}

func TestPriority_BlockedCurve(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	deadline := start.Add(10 * 24 * time.Hour)
	then := model.CurveConfig{Kind: model.CurveLinear, Linear: &model.LinearParams{StartDate: start, Deadline: deadline}}
	cfg := model.CurveConfig{Kind: model.CurveBlocked, Blocked: &model.BlockedParams{Dependencies: []int64{7}, ThenCurve: &then}}
	task := newTask(cfg)

	at := start.Add(5 * 24 * time.Hour)
	assert.Equal(t, 0.0, Priority(task, EvalContext{At: at, Deps: func(int64) bool { return false }}))
	assert.InDelta(t, 0.5, Priority(task, EvalContext{At: at, Deps: func(int64) bool { return true }}), 0.001)
}

func TestPriority_AccumulatorCompletionMode(t *testing.T) {
	last := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pattern := &model.RecurrencePattern{Mode: model.RecurrenceCompletion, Type: model.RecurrenceInterval, Interval: 7, Unit: model.UnitDays}
	cfg := model.CurveConfig{Kind: model.CurveAccumulator, Accumulator: &model.AccumulatorParams{Recurrence: pattern, LastCompletedAt: &last}}
	task := newTask(cfg)

	early := Priority(task, EvalContext{At: last.Add(1 * 24 * time.Hour)})
	late := Priority(task, EvalContext{At: last.Add(8 * 24 * time.Hour)})
	assert.Less(t, early, late)
	assert.Equal(t, 0.9, late)
}
