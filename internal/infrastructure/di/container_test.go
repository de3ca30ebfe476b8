package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotask/chronotask/internal/application/dto"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	c, err := NewContainer(Config{DBPath: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestContainer_WiresTaskUseCase(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	created, err := c.GetTaskUseCase().CreateTask(ctx, dto.CreateTaskRequest{Title: "write report"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "write report", created.Title)

	fetched, err := c.GetTaskUseCase().GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}

func TestContainer_WiresBucketUseCase(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	created, err := c.GetBucketUseCase().CreateBucket(ctx, dto.CreateBucketRequest{Name: "Work", Type: "project"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = c.GetBucketUseCase().CreateBucket(ctx, dto.CreateBucketRequest{Name: "work", Type: "project"})
	assert.Error(t, err)
}

func TestContainer_WiresPlanningUseCase(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	_, err := c.GetTaskUseCase().CreateTask(ctx, dto.CreateTaskRequest{Title: "plan me"})
	require.NoError(t, err)

	resp, err := c.GetPlanningUseCase().Priority(ctx, dto.PriorityRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tasks)
}

func TestContainer_ExportRoundTrip(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	_, err := c.GetTaskUseCase().CreateTask(ctx, dto.CreateTaskRequest{Title: "exportable"})
	require.NoError(t, err)

	bundle, err := c.GetImportExportUseCase().Export(ctx)
	require.NoError(t, err)
	require.Len(t, bundle.Tasks, 1)

	resp, err := c.GetImportExportUseCase().Import(ctx, dto.ImportRequest{
		Mode:    dto.ImportMerge,
		Bundle:  *bundle,
		BatchID: "test-batch",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Tasks.Imported)
}
