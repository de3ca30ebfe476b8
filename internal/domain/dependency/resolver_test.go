package dependency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
)

func lookupFrom(graph map[int64][]int64) TaskLookup {
	return func(id int64) ([]int64, bool) {
		deps, ok := graph[id]
		return deps, ok
	}
}

func TestValidate_RejectsSelfLoop(t *testing.T) {
	err := Validate(1, []int64{1}, lookupFrom(map[int64][]int64{1: nil}))
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestValidate_RejectsUnknownDependency(t *testing.T) {
	err := Validate(1, []int64{99}, lookupFrom(map[int64][]int64{1: nil}))
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestValidate_DetectsCycle(t *testing.T) {
	graph := map[int64][]int64{
		1: nil,
		2: {3},
		3: {1},
	}
	err := Validate(1, []int64{2}, lookupFrom(graph))
	require.Error(t, err)
	assert.True(t, errs.IsCircularDependency(err))
}

func TestValidate_AcceptsAcyclicChain(t *testing.T) {
	graph := map[int64][]int64{
		1: nil,
		2: {3},
		3: nil,
	}
	assert.NoError(t, Validate(1, []int64{2}, lookupFrom(graph)))
}

func statusFrom(m map[int64]model.Status) TaskStatusLookup {
	return func(id int64) (model.Status, bool) {
		s, ok := m[id]
		return s, ok
	}
}

func TestCascadeOnCreateOrUpdate_BlocksOnIncompleteDependency(t *testing.T) {
	task := &model.Task{ID: 1, Dependencies: []int64{2}, Status: model.StatusOpen}
	CascadeOnCreateOrUpdate(task, statusFrom(map[int64]model.Status{2: model.StatusOpen}))
	assert.Equal(t, model.StatusBlocked, task.Status)
}

func TestCascadeOnCreateOrUpdate_OpensWhenDependenciesComplete(t *testing.T) {
	task := &model.Task{ID: 1, Dependencies: []int64{2}, Status: model.StatusBlocked}
	CascadeOnCreateOrUpdate(task, statusFrom(map[int64]model.Status{2: model.StatusCompleted}))
	assert.Equal(t, model.StatusOpen, task.Status)
}

func TestCascadeOnCreateOrUpdate_LeavesCompletedUntouched(t *testing.T) {
	task := &model.Task{ID: 1, Dependencies: []int64{2}, Status: model.StatusCompleted}
	CascadeOnCreateOrUpdate(task, statusFrom(map[int64]model.Status{2: model.StatusOpen}))
	assert.Equal(t, model.StatusCompleted, task.Status)
}

func TestCascadeOnComplete_UnblocksDependents(t *testing.T) {
	dependent := &model.Task{ID: 2, Dependencies: []int64{1}, Status: model.StatusBlocked}
	stillBlocked := &model.Task{ID: 3, Dependencies: []int64{1, 99}, Status: model.StatusBlocked}

	dependents := func(id int64) []*model.Task { return []*model.Task{dependent, stillBlocked} }
	status := statusFrom(map[int64]model.Status{1: model.StatusCompleted, 99: model.StatusOpen})

	unblocked := CascadeOnComplete(1, dependents, status)
	require.Len(t, unblocked, 1)
	assert.Equal(t, int64(2), unblocked[0].ID)
	assert.Equal(t, model.StatusOpen, dependent.Status)
	assert.Equal(t, model.StatusBlocked, stillBlocked.Status)
}

func TestCheckDeletable_RejectsWhenDependentsExist(t *testing.T) {
	dependents := func(id int64) []*model.Task { return []*model.Task{{ID: 5}} }
	_, err := CheckDeletable(1, dependents, false)
	require.Error(t, err)
}

func TestCheckDeletable_AllowsForcedDelete(t *testing.T) {
	dependents := func(id int64) []*model.Task { return []*model.Task{{ID: 5}} }
	refs, err := CheckDeletable(1, dependents, true)
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}
