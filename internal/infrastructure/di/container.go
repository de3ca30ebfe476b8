package di

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	appconfig "github.com/chronotask/chronotask/internal/app/config"
	"github.com/chronotask/chronotask/internal/application/port/input"
	"github.com/chronotask/chronotask/internal/application/port/output"
	bucketusecase "github.com/chronotask/chronotask/internal/application/usecase/bucket"
	importexportusecase "github.com/chronotask/chronotask/internal/application/usecase/importexport"
	planningusecase "github.com/chronotask/chronotask/internal/application/usecase/planning"
	taskusecase "github.com/chronotask/chronotask/internal/application/usecase/task"
	"github.com/chronotask/chronotask/internal/domain/repository"
	sqliterepo "github.com/chronotask/chronotask/internal/infrastructure/persistence/sqlite"
	"github.com/chronotask/chronotask/internal/infrastructure/transaction"
	_ "github.com/mattn/go-sqlite3"
)

// Container is the DI container that holds every dependency wired between
// the persistence, application, and interface layers.
type Container struct {
	db *sql.DB

	taskRepo       repository.TaskRepository
	bucketRepo     repository.BucketRepository
	completionRepo repository.CompletionRepository
	configRepo     repository.ConfigRepository

	txManager output.TransactionManager

	appConfig appconfig.Config

	taskUseCase         input.TaskUseCase
	bucketUseCase       input.BucketUseCase
	planningUseCase     input.PlanningUseCase
	importExportUseCase input.ImportExportUseCase

	config Config
}

// Config holds construction-time settings for the container.
type Config struct {
	DBPath       string
	OutputWriter io.Writer
	Version      string
}

// NewContainer opens the store, runs migrations, and wires every
// repository and use case.
func NewContainer(cfg Config) (*Container, error) {
	c := &Container{config: cfg}

	if c.config.OutputWriter == nil {
		c.config.OutputWriter = os.Stdout
	}

	if err := c.initializeInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}
	if err := c.initializeApplication(); err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return c, nil
}

func (c *Container) initializeInfrastructure() error {
	dbPath := c.config.DBPath
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbDir := filepath.Join(homeDir, ".chronotask")
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		dbPath = filepath.Join(dbDir, "chronotask.db")
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.db = db

	migrator := sqliterepo.NewMigrator(db)
	if err := migrator.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	c.taskRepo = sqliterepo.NewTaskRepository(db)
	c.bucketRepo = sqliterepo.NewBucketRepository(db)
	c.completionRepo = sqliterepo.NewCompletionRepository(db)
	c.configRepo = sqliterepo.NewConfigRepository(db)

	c.txManager = transaction.NewSQLiteTransactionManager(db)

	storeConfig, err := c.configRepo.All(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	defaults, err := appconfig.LoadDefaultsFile(os.Getenv(appconfig.EnvDefaultsFile))
	if err != nil {
		return fmt.Errorf("failed to load defaults file: %w", err)
	}
	c.appConfig = appconfig.Load(storeConfig, defaults)

	return nil
}

func (c *Container) initializeApplication() error {
	c.taskUseCase = taskusecase.New(c.taskRepo, c.bucketRepo, c.completionRepo, c.txManager)
	c.bucketUseCase = bucketusecase.New(c.bucketRepo, c.txManager)
	c.planningUseCase = planningusecase.New(c.taskRepo, c.completionRepo, c.appConfig)
	c.importExportUseCase = importexportusecase.New(c.taskRepo, c.bucketRepo, c.completionRepo, c.txManager)
	return nil
}

// GetTaskUseCase returns the task use case.
func (c *Container) GetTaskUseCase() input.TaskUseCase { return c.taskUseCase }

// GetBucketUseCase returns the bucket use case.
func (c *Container) GetBucketUseCase() input.BucketUseCase { return c.bucketUseCase }

// GetPlanningUseCase returns the planning use case.
func (c *Container) GetPlanningUseCase() input.PlanningUseCase { return c.planningUseCase }

// GetImportExportUseCase returns the import/export use case.
func (c *Container) GetImportExportUseCase() input.ImportExportUseCase { return c.importExportUseCase }

// GetConfigRepository returns the config repository, for commands that
// read or write ambient settings directly (e.g. init).
func (c *Container) GetConfigRepository() repository.ConfigRepository { return c.configRepo }

// Close closes the underlying database connection.
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
