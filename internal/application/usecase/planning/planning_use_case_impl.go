// Package planning implements input.PlanningUseCase: priority ordering,
// the daily planner, and per-task timelines (spec §4.2, §4.5).
package planning

import (
	"context"
	"time"

	"github.com/chronotask/chronotask/internal/app/config"
	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/usecase/convert"
	"github.com/chronotask/chronotask/internal/domain/curve"
	"github.com/chronotask/chronotask/internal/domain/model"
	"github.com/chronotask/chronotask/internal/domain/planner"
	"github.com/chronotask/chronotask/internal/domain/recurrence"
	"github.com/chronotask/chronotask/internal/domain/repository"
)

// UseCaseImpl implements input.PlanningUseCase.
type UseCaseImpl struct {
	tasks       repository.TaskRepository
	completions repository.CompletionRepository
	cfg         config.Config
}

// New creates a planning use case implementation.
func New(tasks repository.TaskRepository, completions repository.CompletionRepository, cfg config.Config) *UseCaseImpl {
	return &UseCaseImpl{tasks: tasks, completions: completions, cfg: cfg}
}

func (uc *UseCaseImpl) dependencyStatusLookup(ctx context.Context) curve.DependencyStatus {
	return func(taskID int64) bool {
		t, err := uc.tasks.FindByID(ctx, taskID)
		if err != nil {
			return false
		}
		return t.Status == model.StatusCompleted
	}
}

// Priority returns every open, unblocked task ordered by descending
// priority (§4.2's "Ordering").
func (uc *UseCaseImpl) Priority(ctx context.Context, req dto.PriorityRequest) (*dto.ListTasksResponse, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	deps := uc.dependencyStatusLookup(ctx)
	scored := curve.ByPriority(tasks, req.At, deps, req.Limit)

	out := make([]dto.TaskDTO, 0, len(scored))
	for _, s := range scored {
		out = append(out, convert.TaskToDTO(s.Task, req.At, deps))
	}
	return &dto.ListTasksResponse{Tasks: out, Total: len(out)}, nil
}

// Plan builds the daily plan for req.At, per §4.5's five-step algorithm,
// falling back to configured work hours and default estimate when the
// request leaves them unset.
func (uc *UseCaseImpl) Plan(ctx context.Context, req dto.PlanRequest) (*dto.PlanResponse, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}

	opts := planner.Options{
		Limit:             req.Limit,
		IncludeTimeBlocks: req.IncludeTimeBlocks,
		WorkHoursStart:    uc.cfg.WorkHoursStart(),
		WorkHoursEnd:      uc.cfg.WorkHoursEnd(),
		DefaultEstimate:   uc.cfg.DefaultEstimateMinutes(),
	}
	if req.WorkHoursStart != nil {
		if ct, err := model.ParseClockTime(*req.WorkHoursStart); err == nil {
			opts.WorkHoursStart = ct
		}
	}
	if req.WorkHoursEnd != nil {
		if ct, err := model.ParseClockTime(*req.WorkHoursEnd); err == nil {
			opts.WorkHoursEnd = ct
		}
	}

	deps := uc.dependencyStatusLookup(ctx)
	p := planner.BuildPlan(tasks, req.At, opts, deps)

	resp := &dto.PlanResponse{
		WorkHoursStart:        p.WorkHoursStart.String(),
		WorkHoursEnd:          p.WorkHoursEnd.String(),
		TotalScheduledMinutes: p.TotalScheduledMinutes,
		RemainingMinutes:      p.RemainingMinutes,
	}
	for _, s := range p.Scheduled {
		resp.Scheduled = append(resp.Scheduled, dto.ScheduledTaskDTO{
			Task:              convert.TaskToDTO(s.Task, req.At, deps),
			SlotStart:         s.Slot.Start,
			SlotEnd:           s.Slot.End,
			EstimateMinutes:   s.EstimateMinutes,
			IsDefaultEstimate: s.IsDefaultEstimate,
		})
	}
	for _, u := range p.Unscheduled {
		resp.Unscheduled = append(resp.Unscheduled, dto.UnscheduledTaskDTO{
			Task:   convert.TaskToDTO(u.Task, req.At, deps),
			Reason: u.Reason,
		})
	}
	return resp, nil
}

// Timeline reports a task's completion history and, for recurring tasks,
// its projected next due instant (§4.6).
func (uc *UseCaseImpl) Timeline(ctx context.Context, req dto.TimelineRequest) (*dto.TimelineResponse, error) {
	t, err := uc.tasks.FindByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	completions, err := uc.completions.ListByTask(ctx, req.TaskID, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	deps := uc.dependencyStatusLookup(ctx)
	resp := &dto.TimelineResponse{
		Task: convert.TaskToDTO(t, now, deps),
	}
	for _, c := range completions {
		resp.Completions = append(resp.Completions, convert.CompletionToDTO(c))
	}

	if t.RecurrencePattern != nil && t.Status != model.StatusCompleted {
		lastCompleted := t.CreatedAt
		if t.LastCompletedAt != nil {
			lastCompleted = *t.LastCompletedAt
		}
		if next, err := recurrence.NextDue(t.RecurrencePattern, lastCompleted, t.CreatedAt, now); err == nil {
			resp.NextDueAt = &next
		}
	}
	return resp, nil
}
