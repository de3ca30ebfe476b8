package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
	"github.com/chronotask/chronotask/internal/domain/repository"
	"github.com/chronotask/chronotask/internal/infrastructure/transaction"
)

// BucketRepositoryImpl implements repository.BucketRepository with SQLite.
type BucketRepositoryImpl struct {
	db *sql.DB
}

// NewBucketRepository creates a new SQLite-based bucket repository.
func NewBucketRepository(db *sql.DB) repository.BucketRepository {
	return &BucketRepositoryImpl{db: db}
}

func (r *BucketRepositoryImpl) getDB(ctx context.Context) dbExecutor {
	if tx, ok := transaction.GetTxFromContext(ctx); ok {
		return tx
	}
	return r.db
}

const bucketColumns = `id, name, type, config, archived`

func (r *BucketRepositoryImpl) FindByID(ctx context.Context, id int64) (*model.Bucket, error) {
	query := `SELECT ` + bucketColumns + ` FROM buckets WHERE id = ?`
	b, err := scanBucket(r.getDB(ctx).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("bucket", id)
	}
	if err != nil {
		return nil, errs.StoreFailure(err)
	}
	return b, nil
}

func (r *BucketRepositoryImpl) Save(ctx context.Context, bucket *model.Bucket) error {
	configJSON, err := marshalBucketConfig(bucket.Config)
	if err != nil {
		return err
	}
	db := r.getDB(ctx)

	if bucket.ID == 0 {
		query := `INSERT INTO buckets (name, type, config, archived) VALUES (?, ?, ?, ?)`
		result, err := db.ExecContext(ctx, query, bucket.Name, string(bucket.Type), configJSON, bucket.Archived)
		if err != nil {
			return errs.StoreFailure(fmt.Errorf("insert bucket failed: %w", err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return errs.StoreFailure(err)
		}
		bucket.ID = id
		return nil
	}

	query := `UPDATE buckets SET name = ?, type = ?, config = ?, archived = ? WHERE id = ?`
	result, err := db.ExecContext(ctx, query, bucket.Name, string(bucket.Type), configJSON, bucket.Archived, bucket.ID)
	if err != nil {
		return errs.StoreFailure(fmt.Errorf("update bucket failed: %w", err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errs.StoreFailure(err)
	}
	if rows == 0 {
		return errs.NotFound("bucket", bucket.ID)
	}
	return nil
}

// Delete removes a bucket. Member tasks are not deleted; their bucket_id is
// cleared by the tasks.bucket_id foreign key's ON DELETE SET NULL (I6).
func (r *BucketRepositoryImpl) Delete(ctx context.Context, id int64) error {
	db := r.getDB(ctx)
	result, err := db.ExecContext(ctx, "DELETE FROM buckets WHERE id = ?", id)
	if err != nil {
		return errs.StoreFailure(fmt.Errorf("delete bucket failed: %w", err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return errs.StoreFailure(err)
	}
	if rows == 0 {
		return errs.NotFound("bucket", id)
	}
	return nil
}

func (r *BucketRepositoryImpl) List(ctx context.Context, includeArchived bool) ([]*model.Bucket, error) {
	query := `SELECT ` + bucketColumns + ` FROM buckets`
	if !includeArchived {
		query += ` WHERE archived = 0`
	}
	query += ` ORDER BY name`

	rows, err := r.getDB(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, errs.StoreFailure(fmt.Errorf("list buckets failed: %w", err))
	}
	defer rows.Close()

	var buckets []*model.Bucket
	for rows.Next() {
		b, err := scanBucket(rows)
		if err != nil {
			return nil, errs.StoreFailure(err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.StoreFailure(err)
	}
	return buckets, nil
}

func scanBucket(row rowScanner) (*model.Bucket, error) {
	var (
		b         model.Bucket
		typeStr   string
		configStr string
	)
	if err := row.Scan(&b.ID, &b.Name, &typeStr, &configStr, &b.Archived); err != nil {
		return nil, err
	}
	b.Type = model.BucketType(typeStr)
	cfg, err := unmarshalBucketConfig(configStr)
	if err != nil {
		return nil, err
	}
	b.Config = cfg
	return &b, nil
}
