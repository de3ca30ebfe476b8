package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
	"github.com/chronotask/chronotask/internal/domain/repository"
	"github.com/chronotask/chronotask/internal/infrastructure/transaction"
)

// dbExecutor is implemented by both *sql.DB and *sql.Tx.
type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TaskRepositoryImpl implements repository.TaskRepository with SQLite.
type TaskRepositoryImpl struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite-based task repository.
func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) getDB(ctx context.Context) dbExecutor {
	if tx, ok := transaction.GetTxFromContext(ctx); ok {
		return tx
	}
	return r.db
}

const taskColumns = `id, title, project, bucket_id, tags, notes, color, deadline,
	estimate_minutes, recurrence_pattern, window_start, window_end,
	dependencies, curve_config, status, last_completed_at, next_due_at,
	created_at, updated_at`

func (r *TaskRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.getDB(ctx).QueryRowContext(ctx, query, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("task", id)
	}
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	return t, nil
}

func (r *TaskRepositoryImpl) Save(ctx context.Context, task *model.Task) error {
	tagsJSON, err := marshalStringSlice(task.Tags)
	if err != nil {
		return err
	}
	depsJSON, err := marshalInt64Slice(task.Dependencies)
	if err != nil {
		return err
	}
	curveJSON, err := marshalCurveConfig(task.CurveConfig)
	if err != nil {
		return err
	}
	recurrenceJSON, err := marshalRecurrence(task.RecurrencePattern)
	if err != nil {
		return err
	}

	windowStart := clockTimeString(task.WindowStart)
	windowEnd := clockTimeString(task.WindowEnd)

	db := r.getDB(ctx)

	if task.ID == 0 {
		query := `
			INSERT INTO tasks (title, project, bucket_id, tags, notes, color,
				deadline, estimate_minutes, recurrence_pattern, window_start,
				window_end, dependencies, curve_config, status,
				last_completed_at, next_due_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		result, err := db.ExecContext(ctx, query,
			task.Title, task.Project, task.BucketID, tagsJSON, task.Notes, task.Color,
			task.Deadline, task.EstimateMinutes, recurrenceJSON, windowStart, windowEnd,
			depsJSON, curveJSON, string(task.Status),
			task.LastCompletedAt, task.NextDueAt, task.CreatedAt, task.UpdatedAt,
		)
		if err != nil {
			return errs.StoreFailure(fmt.Errorf("insert task failed: %w", err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return errs.StoreFailure(err)
		}
		task.ID = id
		return nil
	}

	query := `
		UPDATE tasks SET
			title = ?, project = ?, bucket_id = ?, tags = ?, notes = ?, color = ?,
			deadline = ?, estimate_minutes = ?, recurrence_pattern = ?,
			window_start = ?, window_end = ?, dependencies = ?, curve_config = ?,
			status = ?, last_completed_at = ?, next_due_at = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := db.ExecContext(ctx, query,
		task.Title, task.Project, task.BucketID, tagsJSON, task.Notes, task.Color,
		task.Deadline, task.EstimateMinutes, recurrenceJSON, windowStart, windowEnd,
		depsJSON, curveJSON, string(task.Status),
		task.LastCompletedAt, task.NextDueAt, task.UpdatedAt, task.ID,
	)
	if err != nil {
		return errs.StoreFailure(fmt.Errorf("update task failed: %w", err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errs.StoreFailure(err)
	}
	if rows == 0 {
		return errs.NotFound("task", task.ID)
	}
	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id int64) error {
	db := r.getDB(ctx)
	result, err := db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return errs.StoreFailure(fmt.Errorf("delete task failed: %w", err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errs.StoreFailure(err)
	}
	if rows == 0 {
		return errs.NotFound("task", id)
	}
	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter repository.TaskFilter) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t`
	conditions := []string{"1=1"}
	args := []interface{}{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		conditions = append(conditions, "t.status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.BucketID != nil {
		conditions = append(conditions, "t.bucket_id = ?")
		args = append(args, *filter.BucketID)
	}
	if filter.Project != "" {
		conditions = append(conditions, "t.project = ?")
		args = append(args, filter.Project)
	}
	if filter.DueBefore != nil {
		conditions = append(conditions, "t.deadline < ?")
		args = append(args, *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		conditions = append(conditions, "t.deadline > ?")
		args = append(args, *filter.DueAfter)
	}

	query += " WHERE " + strings.Join(conditions, " AND ")
	query += " ORDER BY t.created_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.getDB(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.StoreFailure(fmt.Errorf("list tasks failed: %w", err))
	}
	defer rows.Close()

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	if len(filter.Tags) > 0 {
		tasks = filterByTags(tasks, filter.Tags)
	}
	return tasks, nil
}

func (r *TaskRepositoryImpl) ListByDependency(ctx context.Context, dependencyID int64) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE dependencies LIKE '%' || ? || '%'`
	rows, err := r.getDB(ctx).QueryContext(ctx, query, dependencyID)
	if err != nil {
		return nil, errs.StoreFailure(fmt.Errorf("list by dependency failed: %w", err))
	}
	defer rows.Close()

	all, err := scanTasks(rows)
	if err != nil {
		return nil, errs.StoreFailure(err)
	}

	// the LIKE above is a coarse prefilter over the JSON array text; confirm
	// membership precisely before returning.
	var out []*model.Task
	for _, t := range all {
		if t.HasDependency(dependencyID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TaskRepositoryImpl) Search(ctx context.Context, query string, limit int) ([]*model.Task, error) {
	sqlQuery := `
		SELECT ` + strings.ReplaceAll(taskColumns, "id,", "t.id,") + `
		FROM tasks_fts f
		JOIN tasks t ON t.id = f.rowid
		WHERE tasks_fts MATCH ?
		ORDER BY rank
	`
	args := []interface{}{query}
	if limit > 0 {
		sqlQuery += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.getDB(ctx).QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, errs.StoreFailure(fmt.Errorf("search tasks failed: %w", err))
	}
	defer rows.Close()
	return scanTasks(rows)
}

func filterByTags(tasks []*model.Task, want []string) []*model.Task {
	var out []*model.Task
	for _, t := range tasks {
		if hasAnyTag(t.Tags, want) {
			out = append(out, t)
		}
	}
	return out
}

func hasAnyTag(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*model.Task, error) {
	var (
		t               model.Task
		tagsJSON        string
		depsJSON        string
		curveJSON       string
		recurrenceJSON  sql.NullString
		windowStart     sql.NullString
		windowEnd       sql.NullString
		deadline        sql.NullTime
		lastCompletedAt sql.NullTime
		nextDueAt       sql.NullTime
		bucketID        sql.NullInt64
		estimateMinutes sql.NullInt64
		statusStr       string
	)

	if err := row.Scan(
		&t.ID, &t.Title, &t.Project, &bucketID, &tagsJSON, &t.Notes, &t.Color, &deadline,
		&estimateMinutes, &recurrenceJSON, &windowStart, &windowEnd,
		&depsJSON, &curveJSON, &statusStr, &lastCompletedAt, &nextDueAt,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Status = model.Status(statusStr)

	if bucketID.Valid {
		v := bucketID.Int64
		t.BucketID = &v
	}
	if estimateMinutes.Valid {
		v := int(estimateMinutes.Int64)
		t.EstimateMinutes = &v
	}
	if deadline.Valid {
		v := deadline.Time
		t.Deadline = &v
	}
	if lastCompletedAt.Valid {
		v := lastCompletedAt.Time
		t.LastCompletedAt = &v
	}
	if nextDueAt.Valid {
		v := nextDueAt.Time
		t.NextDueAt = &v
	}

	tags, err := unmarshalStringSlice(tagsJSON)
	if err != nil {
		return nil, err
	}
	t.Tags = tags

	deps, err := unmarshalInt64Slice(depsJSON)
	if err != nil {
		return nil, err
	}
	t.Dependencies = deps

	cfg, err := unmarshalCurveConfig(curveJSON)
	if err != nil {
		return nil, err
	}
	t.CurveConfig = cfg

	if recurrenceJSON.Valid {
		pattern, err := unmarshalRecurrence(&recurrenceJSON.String)
		if err != nil {
			return nil, err
		}
		t.RecurrencePattern = pattern
	}

	if windowStart.Valid {
		ct, err := model.ParseClockTime(windowStart.String)
		if err != nil {
			return nil, err
		}
		t.WindowStart = &ct
	}
	if windowEnd.Valid {
		ct, err := model.ParseClockTime(windowEnd.String)
		if err != nil {
			return nil, err
		}
		t.WindowEnd = &ct
	}

	return &t, nil
}

func scanTasks(rows *sql.Rows) ([]*model.Task, error) {
	var tasks []*model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func clockTimeString(c *model.ClockTime) interface{} {
	if c == nil {
		return nil
	}
	return c.String()
}
