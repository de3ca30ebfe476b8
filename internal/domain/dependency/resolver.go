// Package dependency implements the dependency resolver: cycle detection,
// blocked-set maintenance, and cascading status transitions (spec §4.4).
package dependency

import (
	"github.com/chronotask/chronotask/internal/domain/errs"
	"github.com/chronotask/chronotask/internal/domain/model"
)

// TaskLookup resolves a task id to its current dependency list. Used by
// Validate's BFS cycle test without requiring a full task snapshot.
type TaskLookup func(id int64) (deps []int64, exists bool)

// Validate checks proposed_deps against taskID per §4.4:
//  1. reject self-loop and duplicate ids
//  2. reject unknown dependency ids
//  3. BFS cycle test from proposed_deps, following each successor's own
//     dependencies; fail if the frontier ever reaches taskID.
func Validate(taskID int64, proposedDeps []int64, lookup TaskLookup) error {
	seen := make(map[int64]bool, len(proposedDeps))
	for _, d := range proposedDeps {
		if d == taskID {
			return errs.Validation("task %d cannot depend on itself", taskID)
		}
		if seen[d] {
			return errs.Validation("dependency %d is listed more than once", d)
		}
		seen[d] = true
	}
	for _, d := range proposedDeps {
		if _, exists := lookup(d); !exists {
			return errs.Validation("dependency %d does not reference an existing task", d)
		}
	}

	type frontierEntry struct {
		id   int64
		from int64
	}
	visited := make(map[int64]bool)
	queue := make([]frontierEntry, 0, len(proposedDeps))
	for _, d := range proposedDeps {
		queue = append(queue, frontierEntry{id: d, from: taskID})
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.id == taskID {
			return errs.CircularDependency(cur.from, taskID)
		}
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		deps, _ := lookup(cur.id)
		for _, d := range deps {
			queue = append(queue, frontierEntry{id: d, from: cur.id})
		}
	}
	return nil
}

// TaskStatusLookup resolves a task id to its current status, used to decide
// whether a dependency is satisfied.
type TaskStatusLookup func(id int64) (model.Status, bool)

// Unmet reports whether task has at least one dependency that is not
// Completed (I3's right-hand side).
func Unmet(task *model.Task, status TaskStatusLookup) bool {
	if len(task.Dependencies) == 0 {
		return false
	}
	for _, d := range task.Dependencies {
		st, exists := status(d)
		if !exists || st != model.StatusCompleted {
			return true
		}
	}
	return false
}

// CascadeOnCreateOrUpdate enforces I3: after any change to a task's
// dependencies or a dependency's status, the task's status is set to
// Blocked if any dependency is incomplete, else Open — unless the task is
// already Completed or InProgress, which are left untouched.
func CascadeOnCreateOrUpdate(task *model.Task, status TaskStatusLookup) {
	if task.Status == model.StatusCompleted || task.Status == model.StatusInProgress {
		return
	}
	if Unmet(task, status) {
		task.Status = model.StatusBlocked
	} else {
		task.Status = model.StatusOpen
	}
}

// AllTasksLookup returns every task that currently lists dependencyID in
// its Dependencies, for cascade enumeration.
type AllTasksLookup func(dependencyID int64) []*model.Task

// CascadeOnComplete enumerates every task that lists completedID as a
// dependency and, for each whose dependencies are now all Completed and
// whose status is Blocked, transitions it to Open. Must run inside the same
// transaction as the triggering completion write (§4.4, §4.6, P8).
func CascadeOnComplete(completedID int64, dependents AllTasksLookup, status TaskStatusLookup) []*model.Task {
	var unblocked []*model.Task
	for _, t := range dependents(completedID) {
		if t.Status != model.StatusBlocked {
			continue
		}
		if !Unmet(t, status) {
			t.Status = model.StatusOpen
			unblocked = append(unblocked, t)
		}
	}
	return unblocked
}

// CheckDeletable enforces delete protection (I7): deletion fails if any
// other task still lists taskID in its dependencies, unless force is set.
// On a forced delete, the caller is expected to re-run
// CascadeOnCreateOrUpdate on each returned dependent after removing the
// dependency reference.
func CheckDeletable(taskID int64, dependents AllTasksLookup, force bool) ([]*model.Task, error) {
	refs := dependents(taskID)
	if len(refs) == 0 || force {
		return refs, nil
	}
	ids := make([]int64, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
	}
	return refs, errs.HasDependents(taskID, ids)
}
