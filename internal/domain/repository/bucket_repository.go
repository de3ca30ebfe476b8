package repository

import (
	"context"

	"github.com/chronotask/chronotask/internal/domain/model"
)

// BucketRepository persists and retrieves Bucket entities (spec §3, §4.1).
type BucketRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Bucket, error)
	Save(ctx context.Context, bucket *model.Bucket) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, includeArchived bool) ([]*model.Bucket, error)
}
