// Package presenter renders use case results for CLI display, in either
// human-readable text or JSON (spec §6A).
package presenter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/application/port/output"
)

// CLIPresenter implements output.Presenter with human-readable text.
type CLIPresenter struct {
	output io.Writer
}

// NewCLIPresenter creates a text presenter writing to w.
func NewCLIPresenter(w io.Writer) output.Presenter {
	return &CLIPresenter{output: w}
}

func (p *CLIPresenter) PresentSuccess(message string, data interface{}) error {
	if message != "" {
		fmt.Fprintf(p.output, "%s\n", message)
	}

	switch v := data.(type) {
	case *dto.TaskDTO:
		return p.presentTask(v)
	case *dto.ListTasksResponse:
		return p.presentTaskList(v)
	case *dto.BucketDTO:
		return p.presentBucket(v)
	case []dto.BucketDTO:
		return p.presentBucketList(v)
	case *dto.PlanResponse:
		return p.presentPlan(v)
	case *dto.TimelineResponse:
		return p.presentTimeline(v)
	case *dto.ExportResponse:
		return p.presentExport(v)
	case *dto.ImportResponse:
		return p.presentImport(v)
	case nil:
		// no payload to render
	default:
		fmt.Fprintf(p.output, "%+v\n", data)
	}
	return nil
}

func (p *CLIPresenter) PresentError(err error) error {
	fmt.Fprintf(p.output, "error: %v\n", err)
	return err
}

func (p *CLIPresenter) presentTask(t *dto.TaskDTO) error {
	fmt.Fprintf(p.output, "#%d  %s\n", t.ID, t.Title)
	fmt.Fprintf(p.output, "  status:   %s\n", t.Status)
	fmt.Fprintf(p.output, "  priority: %.3f\n", t.Priority)
	if t.Project != "" {
		fmt.Fprintf(p.output, "  project:  %s\n", t.Project)
	}
	if t.BucketID != nil {
		fmt.Fprintf(p.output, "  bucket:   %d\n", *t.BucketID)
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(p.output, "  tags:     %s\n", strings.Join(t.Tags, ", "))
	}
	if t.Deadline != nil {
		fmt.Fprintf(p.output, "  deadline: %s\n", t.Deadline.Format("2006-01-02"))
	}
	if t.EstimateMinutes != nil {
		fmt.Fprintf(p.output, "  estimate: %d min\n", *t.EstimateMinutes)
	}
	if len(t.Dependencies) > 0 {
		fmt.Fprintf(p.output, "  depends:  %v\n", t.Dependencies)
	}
	fmt.Fprintf(p.output, "  curve:    %s\n", t.CurveConfig.Kind)
	if t.Notes != "" {
		fmt.Fprintf(p.output, "\n%s\n", t.Notes)
	}
	return nil
}

func (p *CLIPresenter) presentTaskList(l *dto.ListTasksResponse) error {
	for _, t := range l.Tasks {
		fmt.Fprintf(p.output, "#%-5d %-8s %6.3f  %s\n", t.ID, t.Status, t.Priority, t.Title)
	}
	fmt.Fprintf(p.output, "\n%d task(s)\n", l.Total)
	return nil
}

func (p *CLIPresenter) presentBucket(b *dto.BucketDTO) error {
	fmt.Fprintf(p.output, "#%d  %s (%s)\n", b.ID, b.Name, b.Type)
	if b.Archived {
		fmt.Fprintf(p.output, "  archived\n")
	}
	return nil
}

func (p *CLIPresenter) presentBucketList(bs []dto.BucketDTO) error {
	for _, b := range bs {
		archived := ""
		if b.Archived {
			archived = " (archived)"
		}
		fmt.Fprintf(p.output, "#%-5d %-8s %s%s\n", b.ID, b.Type, b.Name, archived)
	}
	fmt.Fprintf(p.output, "\n%d bucket(s)\n", len(bs))
	return nil
}

func (p *CLIPresenter) presentPlan(plan *dto.PlanResponse) error {
	fmt.Fprintf(p.output, "working hours: %s - %s\n\n", plan.WorkHoursStart, plan.WorkHoursEnd)
	for _, s := range plan.Scheduled {
		marker := ""
		if s.IsDefaultEstimate {
			marker = " (default estimate)"
		}
		fmt.Fprintf(p.output, "%s - %s  #%-5d %s%s\n",
			s.SlotStart.Format("15:04"), s.SlotEnd.Format("15:04"), s.Task.ID, s.Task.Title, marker)
	}
	if len(plan.Unscheduled) > 0 {
		fmt.Fprintf(p.output, "\nunscheduled:\n")
		for _, u := range plan.Unscheduled {
			fmt.Fprintf(p.output, "  #%-5d %-20s (%s)\n", u.Task.ID, u.Task.Title, u.Reason)
		}
	}
	fmt.Fprintf(p.output, "\nscheduled: %d min, remaining: %d min\n", plan.TotalScheduledMinutes, plan.RemainingMinutes)
	return nil
}

func (p *CLIPresenter) presentTimeline(t *dto.TimelineResponse) error {
	fmt.Fprintf(p.output, "#%d  %s\n\n", t.Task.ID, t.Task.Title)
	for _, c := range t.Completions {
		fmt.Fprintf(p.output, "  %s", c.CompletedAt.Format("2006-01-02 15:04"))
		if c.ActualMinutes != nil {
			fmt.Fprintf(p.output, "  (%d min)", *c.ActualMinutes)
		}
		fmt.Fprintln(p.output)
	}
	if t.NextDueAt != nil {
		fmt.Fprintf(p.output, "\nnext due: %s\n", t.NextDueAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (p *CLIPresenter) presentExport(e *dto.ExportResponse) error {
	fmt.Fprintf(p.output, "exported %d task(s), %d bucket(s), %d completion(s) at %s\n",
		len(e.Tasks), len(e.Buckets), len(e.Completions), e.ExportedAt.Format(time.RFC3339))
	return nil
}

func (p *CLIPresenter) presentImport(r *dto.ImportResponse) error {
	fmt.Fprintf(p.output, "batch %s\n", r.BatchID)
	fmt.Fprintf(p.output, "  tasks:       imported=%d skipped=%d\n", r.Tasks.Imported, r.Tasks.Skipped)
	fmt.Fprintf(p.output, "  buckets:     imported=%d skipped=%d\n", r.Buckets.Imported, r.Buckets.Skipped)
	fmt.Fprintf(p.output, "  completions: imported=%d skipped=%d\n", r.Completions.Imported, r.Completions.Skipped)
	return nil
}
