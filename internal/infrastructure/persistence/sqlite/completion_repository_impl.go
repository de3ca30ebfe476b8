package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
	"github.com/chronotask/chronotask/internal/domain/repository"
	"github.com/chronotask/chronotask/internal/infrastructure/transaction"
)

// CompletionRepositoryImpl implements repository.CompletionRepository with SQLite.
type CompletionRepositoryImpl struct {
	db *sql.DB
}

// NewCompletionRepository creates a new SQLite-based completion repository.
func NewCompletionRepository(db *sql.DB) repository.CompletionRepository {
	return &CompletionRepositoryImpl{db: db}
}

func (r *CompletionRepositoryImpl) getDB(ctx context.Context) dbExecutor {
	if tx, ok := transaction.GetTxFromContext(ctx); ok {
		return tx
	}
	return r.db
}

const completionColumns = `id, task_id, completed_at, actual_minutes, scheduled_minutes, day_of_week, hour_of_day`

func (r *CompletionRepositoryImpl) Save(ctx context.Context, completion *model.Completion) error {
	query := `
		INSERT INTO completions (task_id, completed_at, actual_minutes, scheduled_minutes, day_of_week, hour_of_day)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := r.getDB(ctx).ExecContext(ctx, query,
		completion.TaskID, completion.CompletedAt, completion.ActualMinutes,
		completion.ScheduledMinutes, completion.DayOfWeek, completion.HourOfDay,
	)
	if err != nil {
		return errs.StoreFailure(fmt.Errorf("insert completion failed: %w", err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return errs.StoreFailure(err)
	}
	completion.ID = id
	return nil
}

func (r *CompletionRepositoryImpl) ListByTask(ctx context.Context, taskID int64, limit int) ([]*model.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions WHERE task_id = ? ORDER BY completed_at DESC`
	args := []interface{}{taskID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.getDB(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.StoreFailure(fmt.Errorf("list completions failed: %w", err))
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *CompletionRepositoryImpl) ListByRange(ctx context.Context, from, to time.Time) ([]*model.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions WHERE completed_at >= ? AND completed_at < ? ORDER BY completed_at`
	rows, err := r.getDB(ctx).QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, errs.StoreFailure(fmt.Errorf("list completions by range failed: %w", err))
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *CompletionRepositoryImpl) LastCompletedAt(ctx context.Context, taskID int64) (*time.Time, error) {
	query := `SELECT completed_at FROM completions WHERE task_id = ? ORDER BY completed_at DESC LIMIT 1`
	var t time.Time
	err := r.getDB(ctx).QueryRowContext(ctx, query, taskID).Scan(&t)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	return &t, nil
}

func (r *CompletionRepositoryImpl) DeleteByTask(ctx context.Context, taskID int64) error {
	_, err := r.getDB(ctx).ExecContext(ctx, "DELETE FROM completions WHERE task_id = ?", taskID)
	if err != nil {
		return errs.StoreFailure(fmt.Errorf("delete completions failed: %w", err))
	}
	return nil
}

func scanCompletions(rows *sql.Rows) ([]*model.Completion, error) {
	var out []*model.Completion
	for rows.Next() {
		var c model.Completion
		if err := rows.Scan(&c.ID, &c.TaskID, &c.CompletedAt, &c.ActualMinutes, &c.ScheduledMinutes, &c.DayOfWeek, &c.HourOfDay); err != nil {
			return nil, errs.StoreFailure(err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.StoreFailure(err)
	}
	return out, nil
}
