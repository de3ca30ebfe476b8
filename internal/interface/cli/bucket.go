package cli

import (
	"strconv"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/port/input"
	"github.com/chronotask/chronotask/internal/application/port/output"
	"github.com/spf13/cobra"
)

// BucketController handles 'bucket' subcommands.
type BucketController struct {
	bucketUseCase input.BucketUseCase
	presenter     output.Presenter
}

// NewBucketController creates a bucket controller.
func NewBucketController(bucketUC input.BucketUseCase, presenter output.Presenter) *BucketController {
	return &BucketController{bucketUseCase: bucketUC, presenter: presenter}
}

func (c *BucketController) CreateCommand() *cobra.Command {
	var bucketType string
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.bucketUseCase.CreateBucket(cmd.Context(), dto.CreateBucketRequest{Name: args[0], Type: bucketType})
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("bucket created", result)
		},
	}
	cmd.Flags().StringVar(&bucketType, "type", "project", "bucket type: project, category, or context")
	return cmd
}

func (c *BucketController) ListCommand() *cobra.Command {
	var includeArchived bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.bucketUseCase.ListBuckets(cmd.Context(), dto.ListBucketsRequest{IncludeArchived: includeArchived})
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("", result)
		},
	}
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "include archived buckets")
	return cmd
}

func (c *BucketController) ShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a bucket's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			result, err := c.bucketUseCase.GetBucket(cmd.Context(), id)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("", result)
		},
	}
}

func (c *BucketController) DeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a bucket, clearing it from any member tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return c.presenter.PresentError(err)
			}
			if err := c.bucketUseCase.DeleteBucket(cmd.Context(), id); err != nil {
				return c.presenter.PresentError(err)
			}
			return c.presenter.PresentSuccess("bucket deleted", nil)
		},
	}
}

// BuildCommand creates the 'bucket' parent command with all subcommands.
func (c *BucketController) BuildCommand() *cobra.Command {
	bucketCmd := &cobra.Command{
		Use:   "bucket",
		Short: "Manage buckets",
	}
	bucketCmd.AddCommand(
		c.CreateCommand(),
		c.ListCommand(),
		c.ShowCommand(),
		c.DeleteCommand(),
	)
	return bucketCmd
}
