package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/chronotask/chronotask/internal/infra/logging"
	"github.com/chronotask/chronotask/internal/infrastructure/di"
	"github.com/chronotask/chronotask/internal/interface/cli"
	"github.com/chronotask/chronotask/internal/interface/presenter"
)

var version = "dev"

func main() {
	logging.Configure(false, slog.LevelInfo)

	outputFormat := os.Getenv("CHRONOTASK_OUTPUT")

	container, err := di.NewContainer(di.Config{
		DBPath:       os.Getenv("CHRONOTASK_DB_PATH"),
		OutputWriter: os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "chronotask: %v\n", err)
		os.Exit(1)
	}
	defer container.Close()

	var p = presenter.NewCLIPresenter(os.Stdout)
	if outputFormat == "json" {
		p = presenter.NewJSONPresenter(os.Stdout)
	}

	rootBuilder := cli.NewRootBuilder(
		container.GetTaskUseCase(),
		container.GetBucketUseCase(),
		container.GetPlanningUseCase(),
		container.GetImportExportUseCase(),
		container.GetConfigRepository(),
		p,
		version,
	)

	if err := rootBuilder.Build().Execute(); err != nil {
		os.Exit(1)
	}
}
