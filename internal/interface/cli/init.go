package cli

import (
	"github.com/spf13/cobra"

	"github.com/chronotask/chronotask/internal/application/port/output"
	"github.com/chronotask/chronotask/internal/domain/repository"
)

// InitController handles the 'init' command.
type InitController struct {
	configRepo repository.ConfigRepository
	presenter  output.Presenter
}

// NewInitController creates an init controller.
func NewInitController(configRepo repository.ConfigRepository, presenter output.Presenter) *InitController {
	return &InitController{configRepo: configRepo, presenter: presenter}
}

// BuildCommand creates the 'init' command, which sets the "version" key
// when it is not already set and writes the curve_type, work_hours_start
// and work_hours_end keys from its flags on every run, overwriting earlier
// values. The store itself is created and migrated by the DI container
// before any command runs.
func (c *InitController) BuildCommand() *cobra.Command {
	var (
		curveType      string
		workHoursStart string
		workHoursEnd   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the store's configuration defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if _, ok, err := c.configRepo.Get(ctx, "version"); err != nil {
				return c.presenter.PresentError(err)
			} else if !ok {
				if err := c.configRepo.Set(ctx, "version", "1.0.0"); err != nil {
					return c.presenter.PresentError(err)
				}
			}

			if err := c.configRepo.Set(ctx, "curve_type", curveType); err != nil {
				return c.presenter.PresentError(err)
			}
			if err := c.configRepo.Set(ctx, "work_hours_start", workHoursStart); err != nil {
				return c.presenter.PresentError(err)
			}
			if err := c.configRepo.Set(ctx, "work_hours_end", workHoursEnd); err != nil {
				return c.presenter.PresentError(err)
			}

			return c.presenter.PresentSuccess("store initialized", nil)
		},
	}

	cmd.Flags().StringVar(&curveType, "curve-type", "linear", "default curve kind for tasks created without one")
	cmd.Flags().StringVar(&workHoursStart, "work-hours-start", "09:00", "default work hours start, HH:MM")
	cmd.Flags().StringVar(&workHoursEnd, "work-hours-end", "17:00", "default work hours end, HH:MM")

	return cmd
}
