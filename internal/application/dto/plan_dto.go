package dto

import "time"

// PlanRequest carries the input for PlanningUseCase.Plan (spec §4.5).
type PlanRequest struct {
	At                time.Time
	Limit             int
	IncludeTimeBlocks bool
	WorkHoursStart    *string
	WorkHoursEnd      *string
}

// PlanResponse is the daily plan's output shape (spec §4.5 step 5).
type PlanResponse struct {
	Scheduled             []ScheduledTaskDTO
	Unscheduled           []UnscheduledTaskDTO
	WorkHoursStart        string
	WorkHoursEnd          string
	TotalScheduledMinutes int
	RemainingMinutes      int
}

// ScheduledTaskDTO is one entry in PlanResponse.Scheduled.
type ScheduledTaskDTO struct {
	Task              TaskDTO
	SlotStart         time.Time
	SlotEnd           time.Time
	EstimateMinutes   int
	IsDefaultEstimate bool
}

// UnscheduledTaskDTO is one entry in PlanResponse.Unscheduled.
type UnscheduledTaskDTO struct {
	Task   TaskDTO
	Reason string
}

// PriorityRequest carries the input for PlanningUseCase.Priority.
type PriorityRequest struct {
	At    time.Time
	Limit int
}

// TimelineRequest carries the input for PlanningUseCase.Timeline.
type TimelineRequest struct {
	TaskID int64
}

// TimelineResponse reports a task's completion history and, for recurring
// tasks, its projected next due instant.
type TimelineResponse struct {
	Task        TaskDTO
	Completions []CompletionDTO
	NextDueAt   *time.Time
}

// CompletionDTO is the read-model of a Completion.
type CompletionDTO struct {
	ID               int64
	TaskID           int64
	CompletedAt      time.Time
	ActualMinutes    *int
	ScheduledMinutes *int
	DayOfWeek        int
	HourOfDay        int
}
