// Package importexport implements input.ImportExportUseCase: whole-store
// export and the replace/merge import modes (spec §6).
package importexport

import (
	"context"
	"time"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/port/output"
	"github.com/chronotask/chronotask/internal/application/usecase/convert"
	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/repository"
)

const exportVersion = "1.0.0"

// UseCaseImpl implements input.ImportExportUseCase.
type UseCaseImpl struct {
	tasks       repository.TaskRepository
	buckets     repository.BucketRepository
	completions repository.CompletionRepository
	txManager   output.TransactionManager
}

// New creates an import/export use case implementation.
func New(tasks repository.TaskRepository, buckets repository.BucketRepository, completions repository.CompletionRepository, txManager output.TransactionManager) *UseCaseImpl {
	return &UseCaseImpl{tasks: tasks, buckets: buckets, completions: completions, txManager: txManager}
}

// Export serializes the whole store (§6).
func (uc *UseCaseImpl) Export(ctx context.Context) (*dto.ExportResponse, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	buckets, err := uc.buckets.List(ctx, true)
	if err != nil {
		return nil, err
	}
	completions, err := uc.completions.ListByRange(ctx, time.Time{}, time.Now().UTC().AddDate(100, 0, 0))
	if err != nil {
		return nil, err
	}

	resp := &dto.ExportResponse{Version: exportVersion, ExportedAt: time.Now().UTC()}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, convert.TaskToDTO(t, resp.ExportedAt, func(int64) bool { return false }))
	}
	for _, b := range buckets {
		resp.Buckets = append(resp.Buckets, convert.BucketToDTO(b))
	}
	for _, c := range completions {
		resp.Completions = append(resp.Completions, convert.CompletionToDTO(c))
	}
	return resp, nil
}

// Import loads a bundle in replace or merge mode, as a single transaction
// (§6). Replace wipes the store before insertion; merge re-allocates
// incoming ids, remapping dependency references and bucket/task
// associations from source ids to the newly allocated ones.
func (uc *UseCaseImpl) Import(ctx context.Context, req dto.ImportRequest) (*dto.ImportResponse, error) {
	if req.Mode != dto.ImportReplace && req.Mode != dto.ImportMerge {
		return nil, errs.Validation("unsupported import mode %q", req.Mode)
	}

	tx, err := uc.txManager.BeginTransaction(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.ImportResponse{BatchID: req.BatchID}
	if err := uc.runImport(tx.Context(), req, resp); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, rbErr
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return resp, nil
}

// runImport performs the import body against an already-open transaction
// context, leaving commit/rollback to the caller.
func (uc *UseCaseImpl) runImport(txCtx context.Context, req dto.ImportRequest, resp *dto.ImportResponse) error {
	if req.Mode == dto.ImportReplace {
		if err := uc.wipe(txCtx); err != nil {
			return err
		}
	}

	bucketIDMap := map[int64]int64{}
	for _, b := range req.Bundle.Buckets {
		bk := convert.BucketDTOToModel(b)
		sourceID := bk.ID
		bk.ID = 0
		if err := uc.buckets.Save(txCtx, bk); err != nil {
			resp.Buckets.Skipped++
			continue
		}
		bucketIDMap[sourceID] = bk.ID
		resp.Buckets.Imported++
	}

	taskIDMap := map[int64]int64{}
	for _, td := range req.Bundle.Tasks {
		t, err := convert.TaskDTOToModel(td)
		if err != nil {
			resp.Tasks.Skipped++
			continue
		}
		sourceID := t.ID
		t.ID = 0
		if t.BucketID != nil {
			if mapped, ok := bucketIDMap[*t.BucketID]; ok {
				bid := mapped
				t.BucketID = &bid
			} else if req.Mode == dto.ImportReplace {
				// replace mode keeps no prior buckets, so an
				// unmapped reference means the source bucket was
				// skipped; drop the association.
				t.BucketID = nil
			}
		}
		if err := uc.tasks.Save(txCtx, t); err != nil {
			resp.Tasks.Skipped++
			continue
		}
		taskIDMap[sourceID] = t.ID
		resp.Tasks.Imported++
	}

	// remap dependency references now that every task has its final id.
	for _, td := range req.Bundle.Tasks {
		newID, ok := taskIDMap[td.ID]
		if !ok || len(td.Dependencies) == 0 {
			continue
		}
		t, err := uc.tasks.FindByID(txCtx, newID)
		if err != nil {
			continue
		}
		remapped := make([]int64, 0, len(t.Dependencies))
		for _, depSourceID := range td.Dependencies {
			if mapped, ok := taskIDMap[depSourceID]; ok {
				remapped = append(remapped, mapped)
			}
		}
		t.Dependencies = remapped
		if err := uc.tasks.Save(txCtx, t); err != nil {
			return err
		}
	}

	for _, cd := range req.Bundle.Completions {
		c := convert.CompletionDTOToModel(cd)
		sourceTaskID := c.TaskID
		c.ID = 0
		newTaskID, ok := taskIDMap[sourceTaskID]
		if !ok {
			resp.Completions.Skipped++
			continue
		}
		c.TaskID = newTaskID
		if err := uc.completions.Save(txCtx, c); err != nil {
			resp.Completions.Skipped++
			continue
		}
		resp.Completions.Imported++
	}

	return nil
}

// wipe deletes every task, bucket, and completion, for replace-mode import.
func (uc *UseCaseImpl) wipe(ctx context.Context) error {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := uc.completions.DeleteByTask(ctx, t.ID); err != nil {
			return err
		}
		if err := uc.tasks.Delete(ctx, t.ID); err != nil {
			return err
		}
	}

	buckets, err := uc.buckets.List(ctx, true)
	if err != nil {
		return err
	}
	for _, b := range buckets {
		if err := uc.buckets.Delete(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}
