package input

import (
	"context"

	"github.com/chronotask/chronotask/internal/application/dto"
)

// PlanningUseCase defines the priority-ordering, planning, and timeline
// read operations (spec §4.2, §4.5).
type PlanningUseCase interface {
	Priority(ctx context.Context, req dto.PriorityRequest) (*dto.ListTasksResponse, error)
	Plan(ctx context.Context, req dto.PlanRequest) (*dto.PlanResponse, error)
	Timeline(ctx context.Context, req dto.TimelineRequest) (*dto.TimelineResponse, error)
}
