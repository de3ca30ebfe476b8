package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/port/input"
	"github.com/chronotask/chronotask/internal/application/port/output"
)

// PlanningController handles the 'priority', 'plan', and 'timeline'
// commands.
type PlanningController struct {
	planningUseCase input.PlanningUseCase
	presenter       output.Presenter
}

// NewPlanningController creates a planning controller.
func NewPlanningController(planningUC input.PlanningUseCase, presenter output.Presenter) *PlanningController {
	return &PlanningController{planningUseCase: planningUC, presenter: presenter}
}

func (c *PlanningController) PriorityCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "priority",
		Short: "List open tasks ordered by descending priority",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.planningUseCase.Priority(cmd.Context(), dto.PriorityRequest{At: time.Now().UTC(), Limit: limit})
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("", result)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	return cmd
}

func (c *PlanningController) PlanCommand() *cobra.Command {
	var (
		limit             int
		includeTimeBlocks bool
		workHoursStart    string
		workHoursEnd      string
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build today's plan by packing the highest-priority tasks into working hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.PlanRequest{
				At:                time.Now().UTC(),
				Limit:             limit,
				IncludeTimeBlocks: includeTimeBlocks,
			}
			if workHoursStart != "" {
				req.WorkHoursStart = &workHoursStart
			}
			if workHoursEnd != "" {
				req.WorkHoursEnd = &workHoursEnd
			}
			result, err := c.planningUseCase.Plan(cmd.Context(), req)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("", result)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of tasks to plan")
	cmd.Flags().BoolVar(&includeTimeBlocks, "time-blocks", true, "assign concrete time slots rather than a bare priority order")
	cmd.Flags().StringVar(&workHoursStart, "work-hours-start", "", "override configured work hours start, HH:MM")
	cmd.Flags().StringVar(&workHoursEnd, "work-hours-end", "", "override configured work hours end, HH:MM")
	return cmd
}

func (c *PlanningController) TimelineCommand() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "timeline [id]",
		Short: "Show a task's completion history and projected next due instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			result, err := c.planningUseCase.Timeline(cmd.Context(), dto.TimelineRequest{TaskID: id})
			if err != nil {
				return c.presenter.PresentError(err)
			}
			if asYAML {
				data, err := yaml.Marshal(result)
				if err != nil {
					return c.presenter.PresentError(err)
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			}
			return c.presenter.PresentSuccess("", result)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "emit the timeline as YAML instead of the default presenter format")
	return cmd
}
