package curve

import (
	"sort"
	"time"

	"github.com/chronotask/chronotask/internal/domain/model"
)

// Scored pairs a task with its computed priority for ordering purposes.
type Scored struct {
	Task     *model.Task
	Priority float64
}

// ByPriority returns Open (non-Blocked) tasks sorted by descending
// priority, then ascending id as a stable tie-breaker (§4.2 "Ordering").
// Completed tasks are excluded unconditionally; limit <= 0 means no limit.
func ByPriority(tasks []*model.Task, at time.Time, deps DependencyStatus, limit int) []Scored {
	ectx := EvalContext{At: at, Deps: deps}
	out := make([]Scored, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == model.StatusCompleted || t.Status == model.StatusBlocked {
			continue
		}
		out = append(out, Scored{Task: t, Priority: Priority(t, ectx)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Task.ID < out[j].Task.ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
