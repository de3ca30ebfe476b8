package cli

import (
	"strconv"
	"time"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/port/input"
	"github.com/chronotask/chronotask/internal/application/port/output"
	"github.com/spf13/cobra"
)

// TaskController handles 'task' subcommands.
type TaskController struct {
	taskUseCase input.TaskUseCase
	presenter   output.Presenter
}

// NewTaskController creates a task controller.
func NewTaskController(taskUC input.TaskUseCase, presenter output.Presenter) *TaskController {
	return &TaskController{taskUseCase: taskUC, presenter: presenter}
}

func (c *TaskController) CreateCommand() *cobra.Command {
	var (
		project         string
		bucketName      string
		tags            []string
		notes           string
		color           string
		deadline        string
		estimateMinutes int
		dependencies    []int64
		windowStart     string
		windowEnd       string
	)

	cmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateTaskRequest{
				Title:        args[0],
				Project:      project,
				BucketName:   bucketName,
				Tags:         tags,
				Notes:        notes,
				Color:        color,
				Dependencies: dependencies,
			}
			if deadline != "" {
				t, err := time.Parse(time.RFC3339, deadline)
				if err != nil {
					return c.presenter.PresentError(err)
				}
				req.Deadline = &t
			}
			if estimateMinutes > 0 {
				req.EstimateMinutes = &estimateMinutes
			}
			if windowStart != "" {
				req.WindowStart = &windowStart
			}
			if windowEnd != "" {
				req.WindowEnd = &windowEnd
			}

			result, err := c.taskUseCase.CreateTask(cmd.Context(), req)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("task created", result)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "project name")
	cmd.Flags().StringVar(&bucketName, "bucket", "", "bucket name")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	cmd.Flags().StringVar(&color, "color", "", "display color")
	cmd.Flags().StringVar(&deadline, "deadline", "", "deadline, RFC3339")
	cmd.Flags().IntVar(&estimateMinutes, "estimate", 0, "estimated duration in minutes")
	cmd.Flags().Int64SliceVar(&dependencies, "depends-on", nil, "dependency task id (repeatable)")
	cmd.Flags().StringVar(&windowStart, "window-start", "", "daily window start, HH:MM")
	cmd.Flags().StringVar(&windowEnd, "window-end", "", "daily window end, HH:MM")

	return cmd
}

func (c *TaskController) ListCommand() *cobra.Command {
	var (
		statuses []string
		project  string
		tags     []string
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.ListTasksRequest{
				Statuses: statuses,
				Project:  project,
				Tags:     tags,
				Limit:    limit,
				Offset:   offset,
			}
			result, err := c.taskUseCase.ListTasks(cmd.Context(), req)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("", result)
		},
	}

	cmd.Flags().StringArrayVar(&statuses, "status", nil, "filter by status (repeatable)")
	cmd.Flags().StringVar(&project, "project", "", "filter by project")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "filter by tag (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "offset for pagination")

	return cmd
}

func (c *TaskController) ShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a task's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			result, err := c.taskUseCase.GetTask(cmd.Context(), id)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("", result)
		},
	}
}

func (c *TaskController) UpdateCommand() *cobra.Command {
	var (
		title           string
		project         string
		bucketName      string
		clearBucket     bool
		tags            []string
		notes           string
		color           string
		deadline        string
		clearDeadline   bool
		estimateMinutes int
		dependencies    []int64
		windowStart     string
		windowEnd       string
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			req := dto.UpdateTaskRequest{ID: id, Tags: tags, Dependencies: dependencies, ClearBucket: clearBucket, ClearDeadline: clearDeadline}
			if cmd.Flags().Changed("title") {
				req.Title = &title
			}
			if cmd.Flags().Changed("project") {
				req.Project = &project
			}
			if cmd.Flags().Changed("bucket") {
				req.BucketName = &bucketName
			}
			if cmd.Flags().Changed("notes") {
				req.Notes = &notes
			}
			if cmd.Flags().Changed("color") {
				req.Color = &color
			}
			if cmd.Flags().Changed("deadline") {
				t, err := time.Parse(time.RFC3339, deadline)
				if err != nil {
					return c.presenter.PresentError(err)
				}
				req.Deadline = &t
			}
			if cmd.Flags().Changed("estimate") {
				req.EstimateMinutes = &estimateMinutes
			}
			if cmd.Flags().Changed("window-start") {
				req.WindowStart = &windowStart
			}
			if cmd.Flags().Changed("window-end") {
				req.WindowEnd = &windowEnd
			}

			result, err := c.taskUseCase.UpdateTask(cmd.Context(), req)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("task updated", result)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&project, "project", "", "new project")
	cmd.Flags().StringVar(&bucketName, "bucket", "", "new bucket name")
	cmd.Flags().BoolVar(&clearBucket, "clear-bucket", false, "remove the task's bucket")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "replace tags (repeatable)")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes")
	cmd.Flags().StringVar(&color, "color", "", "new color")
	cmd.Flags().StringVar(&deadline, "deadline", "", "new deadline, RFC3339")
	cmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "remove the task's deadline")
	cmd.Flags().IntVar(&estimateMinutes, "estimate", 0, "new estimate in minutes")
	cmd.Flags().Int64SliceVar(&dependencies, "depends-on", nil, "replace dependencies (repeatable)")
	cmd.Flags().StringVar(&windowStart, "window-start", "", "new daily window start, HH:MM")
	cmd.Flags().StringVar(&windowEnd, "window-end", "", "new daily window end, HH:MM")

	return cmd
}

func (c *TaskController) CompleteCommand() *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "complete [id]",
		Short: "Mark a task completed, advancing recurring tasks to their next due instant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			var atPtr *time.Time
			if at != "" {
				t, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return c.presenter.PresentError(err)
				}
				atPtr = &t
			}
			result, err := c.taskUseCase.CompleteTask(cmd.Context(), id, atPtr)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("task completed", result)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "completion instant, RFC3339 (defaults to now)")
	return cmd
}

func (c *TaskController) DeleteCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			if err := c.taskUseCase.DeleteTask(cmd.Context(), id, force); err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("task deleted", nil)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "delete even if other tasks depend on this one")
	return cmd
}

func (c *TaskController) ReopenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reopen [id]",
		Short: "Reopen a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			result, err := c.taskUseCase.ReopenTask(cmd.Context(), id)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("task reopened", result)
		},
	}
}

func (c *TaskController) SearchCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Full-text search over task title, project, and tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.taskUseCase.SearchTasks(cmd.Context(), dto.SearchTasksRequest{Query: args[0], Limit: limit})
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("", result)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of results")
	return cmd
}

// BuildCommand creates the 'task' parent command with all subcommands.
func (c *TaskController) BuildCommand() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	taskCmd.AddCommand(
		c.CreateCommand(),
		c.ListCommand(),
		c.ShowCommand(),
		c.UpdateCommand(),
		c.CompleteCommand(),
		c.DeleteCommand(),
		c.ReopenCommand(),
		c.SearchCommand(),
	)
	return taskCmd
}
