package repository

import (
	"context"
	"time"

	"github.com/chronotask/chronotask/internal/domain/model"
)

// TaskRepository persists and retrieves Task entities (spec §4.1).
type TaskRepository interface {
	// FindByID retrieves a task by its id.
	FindByID(ctx context.Context, id int64) (*model.Task, error)

	// Save creates task when its ID is zero, otherwise updates the existing
	// row. Save assigns the generated id back onto task on create.
	Save(ctx context.Context, task *model.Task) error

	// Delete removes a task. Callers must run dependency.CheckDeletable
	// first; Delete itself does not enforce I7.
	Delete(ctx context.Context, id int64) error

	// List retrieves tasks matching filter.
	List(ctx context.Context, filter TaskFilter) ([]*model.Task, error)

	// ListByDependency returns every task that lists dependencyID in its
	// Dependencies, for cascade enumeration (§4.4).
	ListByDependency(ctx context.Context, dependencyID int64) ([]*model.Task, error)

	// Search performs a full-text match over title, project, and tags
	// (§4.1A); notes are not indexed.
	Search(ctx context.Context, query string, limit int) ([]*model.Task, error)
}

// TaskFilter defines criteria for filtering tasks in List (§4.1).
type TaskFilter struct {
	Statuses  []model.Status
	BucketID  *int64
	Project   string
	Tags      []string
	DueBefore *time.Time
	DueAfter  *time.Time
	Limit     int
	Offset    int
}
