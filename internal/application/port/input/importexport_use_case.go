package input

import (
	"context"

	"github.com/chronotask/chronotask/internal/application/dto"
)

// ImportExportUseCase defines the whole-store export/import operations
// (spec §6).
type ImportExportUseCase interface {
	Export(ctx context.Context) (*dto.ExportResponse, error)
	Import(ctx context.Context, req dto.ImportRequest) (*dto.ImportResponse, error)
}
