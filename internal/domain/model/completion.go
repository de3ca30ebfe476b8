package model

import "time"

// Completion is a historical record of a task completion event, cascade
// deleted with its task.
type Completion struct {
	ID     int64
	TaskID int64

	CompletedAt time.Time

	ActualMinutes    *int
	ScheduledMinutes *int

	DayOfWeek int // 0..6, Sunday=0
	HourOfDay int // 0..23
}

// NewCompletion builds a Completion for taskID at completedAt, deriving
// DayOfWeek/HourOfDay from completedAt's local time.
func NewCompletion(taskID int64, completedAt time.Time, scheduledMinutes *int) Completion {
	return Completion{
		TaskID:           taskID,
		CompletedAt:      completedAt,
		ScheduledMinutes: scheduledMinutes,
		DayOfWeek:        int(completedAt.Weekday()),
		HourOfDay:        completedAt.Hour(),
	}
}
