// Package cli wires the application's use cases into a cobra command tree
// (spec §6, §6A).
package cli

import (
	"github.com/chronotask/chronotask/internal/application/port/input"
	"github.com/chronotask/chronotask/internal/application/port/output"
	"github.com/chronotask/chronotask/internal/domain/repository"
	"github.com/spf13/cobra"
)

// RootBuilder builds the root command with every chronotask subcommand.
type RootBuilder struct {
	taskUseCase         input.TaskUseCase
	bucketUseCase       input.BucketUseCase
	planningUseCase     input.PlanningUseCase
	importExportUseCase input.ImportExportUseCase
	configRepo          repository.ConfigRepository

	presenter output.Presenter

	version string
}

// NewRootBuilder creates a new root command builder.
func NewRootBuilder(
	taskUC input.TaskUseCase,
	bucketUC input.BucketUseCase,
	planningUC input.PlanningUseCase,
	importExportUC input.ImportExportUseCase,
	configRepo repository.ConfigRepository,
	presenter output.Presenter,
	version string,
) *RootBuilder {
	return &RootBuilder{
		taskUseCase:         taskUC,
		bucketUseCase:       bucketUC,
		planningUseCase:     planningUC,
		importExportUseCase: importExportUC,
		configRepo:          configRepo,
		presenter:           presenter,
		version:             version,
	}
}

// Build creates the root command with all subcommands attached.
func (b *RootBuilder) Build() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "chronotask",
		Short:   "chronotask - priority-curve task planner",
		Long:    "chronotask tracks tasks whose priority rises on a configurable curve toward their deadline, and plans them into a working day.",
		Version: b.version,
	}

	taskController := NewTaskController(b.taskUseCase, b.presenter)
	bucketController := NewBucketController(b.bucketUseCase, b.presenter)
	planningController := NewPlanningController(b.planningUseCase, b.presenter)
	importExportController := NewImportExportController(b.importExportUseCase, b.presenter, nil)
	initController := NewInitController(b.configRepo, b.presenter)

	rootCmd.AddCommand(
		taskController.BuildCommand(),
		bucketController.BuildCommand(),
		planningController.PriorityCommand(),
		planningController.PlanCommand(),
		planningController.TimelineCommand(),
		importExportController.ExportCommand(),
		importExportController.ImportCommand(),
		initController.BuildCommand(),
	)

	return rootCmd
}
