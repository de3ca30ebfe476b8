package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotask/chronotask/internal/domain/model"
)

func linearTask(id int64, start, deadline time.Time) *model.Task {
	return &model.Task{
		ID:     id,
		Status: model.StatusOpen,
		CurveConfig: model.CurveConfig{
			Kind:   model.CurveLinear,
			Linear: &model.LinearParams{StartDate: start, Deadline: deadline},
		},
	}
}

func estimate(t *model.Task, minutes int) *model.Task {
	m := minutes
	t.EstimateMinutes = &m
	return t
}

func noDeps(int64) bool { return false }

func baseOpts() Options {
	return Options{
		IncludeTimeBlocks: true,
		WorkHoursStart:    model.ClockTime{Hour: 9},
		WorkHoursEnd:      model.ClockTime{Hour: 17},
		DefaultEstimate:   30,
	}
}

func TestPlan_FiltersNonOpenAndZeroPriority(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	start := day.Add(-time.Hour)
	deadline := day.Add(10 * 24 * time.Hour)

	open := linearTask(1, start, deadline)
	blocked := linearTask(2, start, deadline)
	blocked.Status = model.StatusBlocked
	notYetStarted := linearTask(3, day.Add(time.Hour), deadline) // starts in the future, priority 0

	plan := BuildPlan([]*model.Task{open, blocked, notYetStarted}, day, baseOpts(), noDeps)

	require.Len(t, plan.Scheduled, 1)
	assert.Equal(t, int64(1), plan.Scheduled[0].Task.ID)
}

func TestPlan_OrdersByDescendingPriorityThenID(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	start := day.Add(-9 * 24 * time.Hour)
	deadline := day.Add(24 * time.Hour) // close to deadline -> high priority
	highA := linearTask(5, start, deadline)
	highB := linearTask(2, start, deadline)
	low := linearTask(1, day.Add(-time.Hour), day.Add(20*24*time.Hour))

	plan := BuildPlan([]*model.Task{low, highA, highB}, day, baseOpts(), noDeps)

	require.Len(t, plan.Scheduled, 3)
	assert.Equal(t, int64(2), plan.Scheduled[0].Task.ID)
	assert.Equal(t, int64(5), plan.Scheduled[1].Task.ID)
	assert.Equal(t, int64(1), plan.Scheduled[2].Task.ID)
}

func TestPlan_LimitTruncatesCandidates(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	start := day.Add(-time.Hour)
	deadline := day.Add(10 * 24 * time.Hour)

	tasks := []*model.Task{linearTask(1, start, deadline), linearTask(2, start, deadline), linearTask(3, start, deadline)}
	opts := baseOpts()
	opts.Limit = 2

	plan := BuildPlan(tasks, day, opts, noDeps)
	assert.Len(t, plan.Scheduled, 2)
}

func TestPlan_WithoutTimeBlocksSkipsPacking(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	start := day.Add(-time.Hour)
	deadline := day.Add(10 * 24 * time.Hour)
	task := linearTask(1, start, deadline)

	opts := baseOpts()
	opts.IncludeTimeBlocks = false

	plan := BuildPlan([]*model.Task{task}, day, opts, noDeps)
	require.Len(t, plan.Scheduled, 1)
	assert.True(t, plan.Scheduled[0].Slot.Start.IsZero())
	assert.Equal(t, 0, plan.TotalScheduledMinutes)
}

func TestPlan_PacksSequentiallyFromWorkStart(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	start := day.Add(-9 * 24 * time.Hour)

	first := estimate(linearTask(1, start, day.Add(24*time.Hour)), 60)
	second := estimate(linearTask(2, start, day.Add(48*time.Hour)), 90)

	plan := BuildPlan([]*model.Task{first, second}, day, baseOpts(), noDeps)
	require.Len(t, plan.Scheduled, 2)

	workStart := model.ClockTime{Hour: 9}.On(day)
	assert.Equal(t, workStart, plan.Scheduled[0].Slot.Start)
	assert.Equal(t, workStart.Add(60*time.Minute), plan.Scheduled[0].Slot.End)
	assert.Equal(t, plan.Scheduled[0].Slot.End, plan.Scheduled[1].Slot.Start)
	assert.Equal(t, plan.Scheduled[1].Slot.Start.Add(90*time.Minute), plan.Scheduled[1].Slot.End)
	assert.Equal(t, 150, plan.TotalScheduledMinutes)
	assert.Equal(t, 480-150, plan.RemainingMinutes)
}

func TestPlan_UsesDefaultEstimateWhenUnset(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	task := linearTask(1, day.Add(-time.Hour), day.Add(24*time.Hour))

	plan := BuildPlan([]*model.Task{task}, day, baseOpts(), noDeps)
	require.Len(t, plan.Scheduled, 1)
	assert.True(t, plan.Scheduled[0].IsDefaultEstimate)
	assert.Equal(t, 30, plan.Scheduled[0].EstimateMinutes)
}

func TestPlan_InsufficientTimeAtEndOfDay(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	start := day.Add(-9 * 24 * time.Hour)

	huge := estimate(linearTask(1, start, day.Add(24*time.Hour)), 600) // longer than the 8h day
	plan := BuildPlan([]*model.Task{huge}, day, baseOpts(), noDeps)

	require.Empty(t, plan.Scheduled)
	require.Len(t, plan.Unscheduled, 1)
	assert.Equal(t, "insufficient time", plan.Unscheduled[0].Reason)
}

func TestPlan_NoFittingSlotWhenWindowOutsideWorkingHours(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	task := estimate(linearTask(1, day.Add(-time.Hour), day.Add(24*time.Hour)), 30)
	ws, we := model.ClockTime{Hour: 22}, model.ClockTime{Hour: 23}
	task.WindowStart, task.WindowEnd = &ws, &we
	at := time.Date(2026, 1, 6, 22, 30, 0, 0, time.UTC) // inside the window, so the task is a candidate

	plan := BuildPlan([]*model.Task{task}, at, baseOpts(), noDeps)
	require.Empty(t, plan.Scheduled)
	require.Len(t, plan.Unscheduled, 1)
	assert.Equal(t, "no fitting slot", plan.Unscheduled[0].Reason)
}

func TestPlan_RespectsDailyWindowOverlap(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	task := estimate(linearTask(1, day.Add(-time.Hour), day.Add(24*time.Hour)), 30)
	ws, we := model.ClockTime{Hour: 13}, model.ClockTime{Hour: 15}
	task.WindowStart, task.WindowEnd = &ws, &we
	at := time.Date(2026, 1, 6, 14, 0, 0, 0, time.UTC) // inside the window, so the task is a candidate

	plan := BuildPlan([]*model.Task{task}, at, baseOpts(), noDeps)
	require.Len(t, plan.Scheduled, 1)
	assert.Equal(t, model.ClockTime{Hour: 13}.On(day), plan.Scheduled[0].Slot.Start)
}

func TestPlan_BlockGateExcludesUnmetDependency(t *testing.T) {
	day := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	task := linearTask(1, day.Add(-9*24*time.Hour), day.Add(24*time.Hour))
	task.Dependencies = []int64{99}

	plan := BuildPlan([]*model.Task{task}, day, baseOpts(), noDeps)
	assert.Empty(t, plan.Scheduled)
	assert.Empty(t, plan.Unscheduled)
}
