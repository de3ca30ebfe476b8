package cli

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/port/input"
	"github.com/chronotask/chronotask/internal/application/port/output"
	"github.com/chronotask/chronotask/internal/infrastructure/bundlefile"
)

// ImportExportController handles the 'export' and 'import' commands.
type ImportExportController struct {
	importExportUseCase input.ImportExportUseCase
	presenter           output.Presenter
	fs                  afero.Fs
}

// NewImportExportController creates an import/export controller. A nil fs
// defaults to the real filesystem.
func NewImportExportController(importExportUC input.ImportExportUseCase, presenter output.Presenter, fs afero.Fs) *ImportExportController {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ImportExportController{importExportUseCase: importExportUC, presenter: presenter, fs: fs}
}

func (c *ImportExportController) ExportCommand() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the whole store to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := c.importExportUseCase.Export(cmd.Context())
			if err != nil {
				return c.presenter.PresentError(err)
			}

			if outFile != "" {
				data, err := json.MarshalIndent(bundle, "", "  ")
				if err != nil {
					return c.presenter.PresentError(err)
				}
				if err := bundlefile.WriteAtomic(c.fs, outFile, data); err != nil {
					return c.presenter.PresentError(err)
				}
			}

			return c.presenter.PresentSuccess("export complete", bundle)
		},
	}
	cmd.Flags().StringVar(&outFile, "out", "", "write the export bundle to this file instead of stdout only")
	return cmd
}

func (c *ImportExportController) ImportCommand() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a JSON export bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := bundlefile.Read(c.fs, args[0])
			if err != nil {
				return c.presenter.PresentError(err)
			}
			var bundle dto.ExportResponse
			if err := json.Unmarshal(data, &bundle); err != nil {
				return c.presenter.PresentError(err)
			}

			req := dto.ImportRequest{
				Mode:    dto.ImportMode(mode),
				Bundle:  bundle,
				BatchID: uuid.NewString(),
			}
			result, err := c.importExportUseCase.Import(cmd.Context(), req)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("import complete", result)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(dto.ImportMerge), "import mode: replace or merge")
	return cmd
}
