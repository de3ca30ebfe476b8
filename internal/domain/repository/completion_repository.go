package repository

import (
	"context"
	"time"

	"github.com/chronotask/chronotask/internal/domain/model"
)

// CompletionRepository persists Completion history records, used for
// Completion-mode recurrence anchoring and timeline reporting (§4.1, §6).
type CompletionRepository interface {
	Save(ctx context.Context, completion *model.Completion) error

	// ListByTask returns completions for taskID, most recent first.
	ListByTask(ctx context.Context, taskID int64, limit int) ([]*model.Completion, error)

	// ListByRange returns completions with CompletedAt in [from, to), for
	// timeline aggregation.
	ListByRange(ctx context.Context, from, to time.Time) ([]*model.Completion, error)

	// LastCompletedAt returns the most recent completion time for taskID, if
	// any.
	LastCompletedAt(ctx context.Context, taskID int64) (*time.Time, error)

	// DeleteByTask removes all completion history for taskID (cascade on
	// task delete).
	DeleteByTask(ctx context.Context, taskID int64) error
}
