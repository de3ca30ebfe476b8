package input

import (
	"context"

	"github.com/chronotask/chronotask/internal/application/dto"
)

// BucketUseCase defines bucket management operations.
type BucketUseCase interface {
	CreateBucket(ctx context.Context, req dto.CreateBucketRequest) (*dto.BucketDTO, error)
	GetBucket(ctx context.Context, id int64) (*dto.BucketDTO, error)
	ListBuckets(ctx context.Context, req dto.ListBucketsRequest) ([]dto.BucketDTO, error)
	DeleteBucket(ctx context.Context, id int64) error
}
