// Package bucket implements input.BucketUseCase: bucket CRUD (spec §3, §4.1).
package bucket

import (
	"context"
	"strings"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/port/output"
	"github.com/chronotask/chronotask/internal/application/usecase/convert"
	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
	"github.com/chronotask/chronotask/internal/domain/repository"
)

// UseCaseImpl implements input.BucketUseCase.
type UseCaseImpl struct {
	buckets   repository.BucketRepository
	txManager output.TransactionManager
}

// New creates a bucket use case implementation.
func New(buckets repository.BucketRepository, txManager output.TransactionManager) *UseCaseImpl {
	return &UseCaseImpl{buckets: buckets, txManager: txManager}
}

func (uc *UseCaseImpl) CreateBucket(ctx context.Context, req dto.CreateBucketRequest) (*dto.BucketDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.Validation("bucket name is required")
	}
	bucketType := model.BucketType(req.Type)
	if req.Type == "" {
		bucketType = model.BucketProject
	}
	if !bucketType.IsValid() {
		return nil, errs.Validation("invalid bucket type %q", req.Type)
	}

	var result *dto.BucketDTO
	err := uc.txManager.InTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.buckets.List(txCtx, true)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if strings.EqualFold(b.Name, name) {
				return errs.Conflict("bucket named %q already exists", name)
			}
		}

		b := &model.Bucket{Name: name, Type: bucketType, Config: req.Config}
		if err := uc.buckets.Save(txCtx, b); err != nil {
			return err
		}
		out := convert.BucketToDTO(b)
		result = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *UseCaseImpl) GetBucket(ctx context.Context, id int64) (*dto.BucketDTO, error) {
	b, err := uc.buckets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := convert.BucketToDTO(b)
	return &out, nil
}

func (uc *UseCaseImpl) ListBuckets(ctx context.Context, req dto.ListBucketsRequest) ([]dto.BucketDTO, error) {
	buckets, err := uc.buckets.List(ctx, req.IncludeArchived)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, convert.BucketToDTO(b))
	}
	return out, nil
}

// DeleteBucket removes a bucket. Member tasks have their bucket_id cleared
// atomically by the store's foreign key behavior (I6), not by this use
// case.
func (uc *UseCaseImpl) DeleteBucket(ctx context.Context, id int64) error {
	return uc.buckets.Delete(ctx, id)
}
