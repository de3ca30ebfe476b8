package input

import (
	"context"
	"time"

	"github.com/chronotask/chronotask/internal/application/dto"
)

// TaskUseCase defines the task management operations exposed to the
// interface layer.
type TaskUseCase interface {
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error)
	GetTask(ctx context.Context, id int64) (*dto.TaskDTO, error)
	UpdateTask(ctx context.Context, req dto.UpdateTaskRequest) (*dto.TaskDTO, error)
	ListTasks(ctx context.Context, req dto.ListTasksRequest) (*dto.ListTasksResponse, error)
	SearchTasks(ctx context.Context, req dto.SearchTasksRequest) (*dto.ListTasksResponse, error)
	DeleteTask(ctx context.Context, id int64, force bool) error
	CompleteTask(ctx context.Context, id int64, at *time.Time) (*dto.TaskDTO, error)
	ReopenTask(ctx context.Context, id int64) (*dto.TaskDTO, error)
}
