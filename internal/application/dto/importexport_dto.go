package dto

import "time"

// ExportResponse is the wire shape of a full store export (spec §6).
type ExportResponse struct {
	Version     string
	ExportedAt  time.Time
	Tasks       []TaskDTO
	Buckets     []BucketDTO
	Completions []CompletionDTO
}

// ImportMode selects how ImportUseCase.Import reconciles incoming ids
// against the existing store (spec §6).
type ImportMode string

const (
	ImportReplace ImportMode = "replace"
	ImportMerge   ImportMode = "merge"
)

// ImportRequest carries the input for ImportExportUseCase.Import.
type ImportRequest struct {
	Mode    ImportMode
	Bundle  ExportResponse
	BatchID string // uuid generated by the CLI caller, echoed in ImportResponse; repeated imports are not detected
}

// ImportCounts reports imported/skipped counts for one entity kind.
type ImportCounts struct {
	Imported int
	Skipped  int
}

// ImportResponse is the result shape returned by Import (spec §6).
type ImportResponse struct {
	BatchID     string
	Tasks       ImportCounts
	Buckets     ImportCounts
	Completions ImportCounts
}
