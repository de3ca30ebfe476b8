// Package task implements input.TaskUseCase: task CRUD, search, and the
// completion/reopen lifecycle transitions (spec §4.1, §4.6).
package task

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/port/output"
	"github.com/chronotask/chronotask/internal/application/usecase/convert"
	"github.com/chronotask/chronotask/internal/domain/curve"
	"github.com/chronotask/chronotask/internal/domain/dependency"
	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
	"github.com/chronotask/chronotask/internal/domain/recurrence"
	"github.com/chronotask/chronotask/internal/domain/repository"
)

// UseCaseImpl implements input.TaskUseCase.
type UseCaseImpl struct {
	tasks       repository.TaskRepository
	buckets     repository.BucketRepository
	completions repository.CompletionRepository
	txManager   output.TransactionManager
}

// New creates a task use case implementation.
func New(tasks repository.TaskRepository, buckets repository.BucketRepository, completions repository.CompletionRepository, txManager output.TransactionManager) *UseCaseImpl {
	return &UseCaseImpl{tasks: tasks, buckets: buckets, completions: completions, txManager: txManager}
}

// normalizeTitle applies NFC normalization to free-text title input, matching
// the module's input-sanitization convention for user-supplied strings.
func normalizeTitle(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func (uc *UseCaseImpl) resolveBucketID(ctx context.Context, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	buckets, err := uc.buckets.List(ctx, true)
	if err != nil {
		return nil, err
	}
	for _, b := range buckets {
		if strings.EqualFold(b.Name, name) {
			id := b.ID
			return &id, nil
		}
	}
	// unresolved bucket name downgrades to "no bucket" per §6, not an error.
	return nil, nil
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

func (uc *UseCaseImpl) taskLookup(ctx context.Context) dependency.TaskLookup {
	return func(id int64) ([]int64, bool) {
		t, err := uc.tasks.FindByID(ctx, id)
		if err != nil {
			return nil, false
		}
		return t.Dependencies, true
	}
}

func (uc *UseCaseImpl) taskStatusLookup(ctx context.Context) dependency.TaskStatusLookup {
	return func(id int64) (model.Status, bool) {
		t, err := uc.tasks.FindByID(ctx, id)
		if err != nil {
			return "", false
		}
		return t.Status, true
	}
}

func (uc *UseCaseImpl) allTasksLookup(ctx context.Context) dependency.AllTasksLookup {
	return func(dependencyID int64) []*model.Task {
		ts, err := uc.tasks.ListByDependency(ctx, dependencyID)
		if err != nil {
			return nil
		}
		return ts
	}
}

func (uc *UseCaseImpl) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskDTO, error) {
	title := normalizeTitle(req.Title)
	if title == "" {
		return nil, errs.Validation("title is required")
	}
	if len(title) > 500 {
		return nil, errs.Validation("title exceeds 500 characters")
	}
	if req.EstimateMinutes != nil && *req.EstimateMinutes <= 0 {
		return nil, errs.Validation("estimate_minutes must be positive")
	}

	windowStart, err := convert.ClockTimeToModel(req.WindowStart)
	if err != nil {
		return nil, errs.Validation("%v", err)
	}
	windowEnd, err := convert.ClockTimeToModel(req.WindowEnd)
	if err != nil {
		return nil, errs.Validation("%v", err)
	}
	pattern, err := convert.RecurrenceToModel(req.RecurrencePattern)
	if err != nil {
		return nil, errs.Validation("%v", err)
	}

	now := time.Now().UTC()
	var cfg model.CurveConfig
	if req.CurveConfig != nil {
		cfg, err = convert.CurveConfigToModel(req.CurveConfig)
		if err != nil {
			return nil, errs.Validation("%v", err)
		}
	} else {
		cfg = curve.Infer(windowStart != nil && windowEnd != nil, windowStart, windowEnd, req.Deadline, req.Dependencies, pattern, now)
	}
	if err := curve.Validate(cfg, req.Dependencies); err != nil {
		return nil, err
	}

	t := &model.Task{
		Title:             title,
		Project:           req.Project,
		Tags:              req.Tags,
		Notes:             req.Notes,
		Color:             req.Color,
		Deadline:          req.Deadline,
		EstimateMinutes:   req.EstimateMinutes,
		RecurrencePattern: pattern,
		WindowStart:       windowStart,
		WindowEnd:         windowEnd,
		Dependencies:      req.Dependencies,
		CurveConfig:       cfg,
		Status:            model.StatusOpen,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var result *dto.TaskDTO
	err = uc.txManager.InTransaction(ctx, func(txCtx context.Context) error {
		bucketID, err := uc.resolveBucketID(txCtx, req.BucketName)
		if err != nil {
			return err
		}
		t.BucketID = bucketID

		if err := dependency.Validate(0, req.Dependencies, uc.taskLookup(txCtx)); err != nil {
			return err
		}
		dependency.CascadeOnCreateOrUpdate(t, uc.taskStatusLookup(txCtx))

		if err := uc.tasks.Save(txCtx, t); err != nil {
			return err
		}
		out := convert.TaskToDTO(t, now, uc.dependencyStatusLookup(txCtx))
		result = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *UseCaseImpl) GetTask(ctx context.Context, id int64) (*dto.TaskDTO, error) {
	t, err := uc.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := convert.TaskToDTO(t, time.Now().UTC(), uc.dependencyStatusLookup(ctx))
	return &out, nil
}

func (uc *UseCaseImpl) UpdateTask(ctx context.Context, req dto.UpdateTaskRequest) (*dto.TaskDTO, error) {
	var result *dto.TaskDTO
	err := uc.txManager.InTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.tasks.FindByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Title != nil {
			title := normalizeTitle(*req.Title)
			if title == "" {
				return errs.Validation("title is required")
			}
			t.Title = title
		}
		if req.Project != nil {
			t.Project = *req.Project
		}
		if req.ClearBucket {
			t.BucketID = nil
		} else if req.BucketName != nil {
			bucketID, err := uc.resolveBucketID(txCtx, *req.BucketName)
			if err != nil {
				return err
			}
			t.BucketID = bucketID
		}
		if req.Tags != nil {
			t.Tags = req.Tags
		}
		if req.Notes != nil {
			t.Notes = *req.Notes
		}
		if req.Color != nil {
			t.Color = *req.Color
		}
		if req.ClearDeadline {
			t.Deadline = nil
		} else if req.Deadline != nil {
			t.Deadline = req.Deadline
		}
		if req.EstimateMinutes != nil {
			if *req.EstimateMinutes <= 0 {
				return errs.Validation("estimate_minutes must be positive")
			}
			t.EstimateMinutes = req.EstimateMinutes
		}
		if req.RecurrencePattern != nil {
			pattern, err := convert.RecurrenceToModel(req.RecurrencePattern)
			if err != nil {
				return errs.Validation("%v", err)
			}
			t.RecurrencePattern = pattern
		}
		if req.WindowStart != nil || req.WindowEnd != nil {
			ws, err := convert.ClockTimeToModel(req.WindowStart)
			if err != nil {
				return errs.Validation("%v", err)
			}
			we, err := convert.ClockTimeToModel(req.WindowEnd)
			if err != nil {
				return errs.Validation("%v", err)
			}
			if ws != nil {
				t.WindowStart = ws
			}
			if we != nil {
				t.WindowEnd = we
			}
		}
		if req.Dependencies != nil {
			if err := dependency.Validate(t.ID, req.Dependencies, uc.taskLookup(txCtx)); err != nil {
				return err
			}
			t.Dependencies = req.Dependencies
		}
		if req.CurveConfig != nil {
			cfg, err := convert.CurveConfigToModel(req.CurveConfig)
			if err != nil {
				return errs.Validation("%v", err)
			}
			if err := curve.Validate(cfg, t.Dependencies); err != nil {
				return err
			}
			t.CurveConfig = cfg
		}

		t.UpdatedAt = time.Now().UTC()
		dependency.CascadeOnCreateOrUpdate(t, uc.taskStatusLookup(txCtx))

		if err := uc.tasks.Save(txCtx, t); err != nil {
			return err
		}
		out := convert.TaskToDTO(t, t.UpdatedAt, uc.dependencyStatusLookup(txCtx))
		result = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *UseCaseImpl) ListTasks(ctx context.Context, req dto.ListTasksRequest) (*dto.ListTasksResponse, error) {
	filter := repository.TaskFilter{
		BucketID: req.BucketID,
		Project:  req.Project,
		Tags:     req.Tags,
		Limit:    req.Limit,
		Offset:   req.Offset,
	}
	for _, s := range req.Statuses {
		filter.Statuses = append(filter.Statuses, model.Status(s))
	}

	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	at := time.Now().UTC()
	if req.At != nil {
		at = *req.At
	}
	deps := uc.dependencyStatusLookup(ctx)

	out := &dto.ListTasksResponse{Total: len(tasks)}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, convert.TaskToDTO(t, at, deps))
	}
	return out, nil
}

func (uc *UseCaseImpl) SearchTasks(ctx context.Context, req dto.SearchTasksRequest) (*dto.ListTasksResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, errs.Validation("search query is required")
	}
	tasks, err := uc.tasks.Search(ctx, req.Query, req.Limit)
	if err != nil {
		return nil, err
	}
	at := time.Now().UTC()
	deps := uc.dependencyStatusLookup(ctx)
	out := &dto.ListTasksResponse{Total: len(tasks)}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, convert.TaskToDTO(t, at, deps))
	}
	return out, nil
}

func (uc *UseCaseImpl) DeleteTask(ctx context.Context, id int64, force bool) error {
	return uc.txManager.InTransaction(ctx, func(txCtx context.Context) error {
		dependents, err := dependency.CheckDeletable(id, uc.allTasksLookup(txCtx), force)
		if err != nil {
			return err
		}
		if err := uc.completions.DeleteByTask(txCtx, id); err != nil {
			return err
		}
		if err := uc.tasks.Delete(txCtx, id); err != nil {
			return err
		}
		for _, dep := range dependents {
			dep.Dependencies = removeID(dep.Dependencies, id)
			dependency.CascadeOnCreateOrUpdate(dep, uc.taskStatusLookup(txCtx))
			dep.UpdatedAt = time.Now().UTC()
			if err := uc.tasks.Save(txCtx, dep); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *UseCaseImpl) CompleteTask(ctx context.Context, id int64, at *time.Time) (*dto.TaskDTO, error) {
	completedAt := time.Now().UTC()
	if at != nil {
		completedAt = *at
	}

	var result *dto.TaskDTO
	err := uc.txManager.InTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.tasks.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		completion := model.NewCompletion(t.ID, completedAt, t.EstimateMinutes)
		if err := uc.completions.Save(txCtx, &completion); err != nil {
			return err
		}

		if t.RecurrencePattern != nil {
			lastCompleted := completedAt
			nextDue, err := recurrence.NextDue(t.RecurrencePattern, lastCompleted, t.CreatedAt, completedAt)
			if err != nil {
				return err
			}
			t.LastCompletedAt = &lastCompleted
			t.NextDueAt = &nextDue
			t.Status = model.StatusOpen

			if t.CurveConfig.Kind == model.CurveAccumulator && t.CurveConfig.Accumulator != nil {
				t.CurveConfig.Accumulator.LastCompletedAt = &lastCompleted
				t.CurveConfig.Accumulator.NextDueAt = &nextDue
			}
		} else {
			t.Status = model.StatusCompleted
			t.LastCompletedAt = &completedAt
		}
		t.UpdatedAt = time.Now().UTC()

		if err := uc.tasks.Save(txCtx, t); err != nil {
			return err
		}

		unblocked := dependency.CascadeOnComplete(t.ID, uc.allTasksLookup(txCtx), uc.taskStatusLookup(txCtx))
		for _, dep := range unblocked {
			dep.UpdatedAt = time.Now().UTC()
			if err := uc.tasks.Save(txCtx, dep); err != nil {
				return err
			}
		}

		out := convert.TaskToDTO(t, completedAt, uc.dependencyStatusLookup(txCtx))
		result = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *UseCaseImpl) ReopenTask(ctx context.Context, id int64) (*dto.TaskDTO, error) {
	var result *dto.TaskDTO
	err := uc.txManager.InTransaction(ctx, func(txCtx context.Context) error {
		t, err := uc.tasks.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		t.Status = model.StatusOpen
		t.UpdatedAt = time.Now().UTC()
		dependency.CascadeOnCreateOrUpdate(t, uc.taskStatusLookup(txCtx))

		if err := uc.tasks.Save(txCtx, t); err != nil {
			return err
		}
		out := convert.TaskToDTO(t, t.UpdatedAt, uc.dependencyStatusLookup(txCtx))
		result = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func removeID(ids []int64, target int64) []int64 {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
