package dto

import "time"

// CreateTaskRequest carries the input for TaskUseCase.CreateTask.
type CreateTaskRequest struct {
	Title           string
	Project         string
	BucketName      string
	Tags            []string
	Notes           string
	Color           string
	Deadline        *time.Time
	EstimateMinutes *int
	RecurrencePattern *RecurrencePatternDTO
	WindowStart     *string
	WindowEnd       *string
	Dependencies    []int64
	CurveConfig     *CurveConfigDTO // nil triggers inference (spec §4.2)
}

// UpdateTaskRequest carries the input for TaskUseCase.UpdateTask. Pointer
// fields left nil are unchanged.
type UpdateTaskRequest struct {
	ID              int64
	Title           *string
	Project         *string
	BucketName      *string
	ClearBucket     bool
	Tags            []string
	Notes           *string
	Color           *string
	Deadline        *time.Time
	ClearDeadline   bool
	EstimateMinutes *int
	RecurrencePattern *RecurrencePatternDTO
	WindowStart     *string
	WindowEnd       *string
	Dependencies    []int64
	CurveConfig     *CurveConfigDTO
}

// TaskDTO is the read-model of a Task, including its derived priority at
// the instant it was computed.
type TaskDTO struct {
	ID              int64
	Title           string
	Project         string
	BucketID        *int64
	Tags            []string
	Notes           string
	Color           string
	Deadline        *time.Time
	EstimateMinutes *int
	RecurrencePattern *RecurrencePatternDTO
	WindowStart     *string
	WindowEnd       *string
	Dependencies    []int64
	CurveConfig     CurveConfigDTO
	Status          string
	LastCompletedAt *time.Time
	NextDueAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Priority        float64
}

// ClockTimeDTO is the wire shape of an HH:MM local time.
type ClockTimeDTO struct {
	Hour   int
	Minute int
}

// RecurrencePatternDTO mirrors model.RecurrencePattern for transport.
type RecurrencePatternDTO struct {
	Mode       string
	Type       string
	Interval   int
	Unit       string
	DayOfWeek  *int
	DaysOfWeek []int
	TimeOfDay  *string
	Anchor     *time.Time
}

// CurveConfigDTO mirrors model.CurveConfig for transport, one populated
// variant selected by Kind.
type CurveConfigDTO struct {
	Kind string

	Linear      *LinearParamsDTO
	Exponential *ExponentialParamsDTO
	HardWindow  *HardWindowParamsDTO
	Blocked     *BlockedParamsDTO
	Accumulator *AccumulatorParamsDTO
}

type LinearParamsDTO struct {
	StartDate time.Time
	Deadline  time.Time
}

type ExponentialParamsDTO struct {
	StartDate time.Time
	Deadline  time.Time
	Exponent  float64
}

type HardWindowParamsDTO struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Priority    float64
}

type BlockedParamsDTO struct {
	Dependencies []int64
	ThenCurve    *CurveConfigDTO
}

type AccumulatorParamsDTO struct {
	Recurrence      *RecurrencePatternDTO
	LastCompletedAt *time.Time
	NextDueAt       *time.Time
	BuildupRate     float64
}

// ListTasksRequest carries filter/pagination input for TaskUseCase.ListTasks.
type ListTasksRequest struct {
	Statuses []string
	BucketID *int64
	Project  string
	Tags     []string
	Limit    int
	Offset   int
	At       *time.Time // evaluation instant for Priority; defaults to now
}

// ListTasksResponse wraps a page of tasks.
type ListTasksResponse struct {
	Tasks []TaskDTO
	Total int
}

// SearchTasksRequest carries the input for TaskUseCase.SearchTasks.
type SearchTasksRequest struct {
	Query string
	Limit int
}
