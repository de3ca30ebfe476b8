package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/repository"
	"github.com/chronotask/chronotask/internal/infrastructure/transaction"
)

// ConfigRepositoryImpl implements repository.ConfigRepository with SQLite.
type ConfigRepositoryImpl struct {
	db *sql.DB
}

// NewConfigRepository creates a new SQLite-based config repository.
func NewConfigRepository(db *sql.DB) repository.ConfigRepository {
	return &ConfigRepositoryImpl{db: db}
}

func (r *ConfigRepositoryImpl) getDB(ctx context.Context) dbExecutor {
	if tx, ok := transaction.GetTxFromContext(ctx); ok {
		return tx
	}
	return r.db
}

func (r *ConfigRepositoryImpl) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.getDB(ctx).QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.StoreFailure(err)
	}
	return value, true, nil
}

func (r *ConfigRepositoryImpl) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := r.getDB(ctx).ExecContext(ctx, query, key, value); err != nil {
		return errs.StoreFailure(fmt.Errorf("set config failed: %w", err))
	}
	return nil
}

func (r *ConfigRepositoryImpl) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.getDB(ctx).QueryContext(ctx, "SELECT key, value FROM config")
	if err != nil {
		return nil, errs.StoreFailure(fmt.Errorf("list config failed: %w", err))
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, errs.StoreFailure(err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, errs.StoreFailure(err)
	}
	return out, nil
}
