// Package convert holds the DTO<->domain-model mapping helpers shared by
// every use case implementation, keeping that translation in one place
// instead of duplicated per resource.
package convert

import (
	"time"

	"github.com/chronotask/chronotask/internal/application/dto"
	"github.com/chronotask/chronotask/internal/domain/curve"
	"github.com/chronotask/chronotask/internal/domain/model"
)

func ClockTimeToModel(s *string) (*model.ClockTime, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ct, err := model.ParseClockTime(*s)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func ClockTimeToDTO(c *model.ClockTime) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func RecurrenceToModel(d *dto.RecurrencePatternDTO) (*model.RecurrencePattern, error) {
	if d == nil {
		return nil, nil
	}
	timeOfDay, err := ClockTimeToModel(d.TimeOfDay)
	if err != nil {
		return nil, err
	}
	return &model.RecurrencePattern{
		Mode:       model.RecurrenceMode(d.Mode),
		Type:       model.RecurrenceType(d.Type),
		Interval:   d.Interval,
		Unit:       model.IntervalUnit(d.Unit),
		DayOfWeek:  d.DayOfWeek,
		DaysOfWeek: d.DaysOfWeek,
		TimeOfDay:  timeOfDay,
		Anchor:     d.Anchor,
	}, nil
}

func RecurrenceToDTO(p *model.RecurrencePattern) *dto.RecurrencePatternDTO {
	if p == nil {
		return nil
	}
	return &dto.RecurrencePatternDTO{
		Mode:       string(p.Mode),
		Type:       string(p.Type),
		Interval:   p.Interval,
		Unit:       string(p.Unit),
		DayOfWeek:  p.DayOfWeek,
		DaysOfWeek: p.DaysOfWeek,
		TimeOfDay:  ClockTimeToDTO(p.TimeOfDay),
		Anchor:     p.Anchor,
	}
}

func CurveConfigToModel(d *dto.CurveConfigDTO) (model.CurveConfig, error) {
	if d == nil {
		return model.CurveConfig{}, nil
	}
	cfg := model.CurveConfig{Kind: model.CurveKind(d.Kind)}
	switch cfg.Kind {
	case model.CurveLinear:
		if d.Linear != nil {
			cfg.Linear = &model.LinearParams{StartDate: d.Linear.StartDate, Deadline: d.Linear.Deadline}
		}
	case model.CurveExponential:
		if d.Exponential != nil {
			cfg.Exponential = &model.ExponentialParams{StartDate: d.Exponential.StartDate, Deadline: d.Exponential.Deadline, Exponent: d.Exponential.Exponent}
		}
	case model.CurveHardWindow:
		if d.HardWindow != nil {
			cfg.HardWindow = &model.HardWindowParams{WindowStart: d.HardWindow.WindowStart, WindowEnd: d.HardWindow.WindowEnd, Priority: d.HardWindow.Priority}
		}
	case model.CurveBlocked:
		if d.Blocked != nil {
			var then *model.CurveConfig
			if d.Blocked.ThenCurve != nil {
				v, err := CurveConfigToModel(d.Blocked.ThenCurve)
				if err != nil {
					return model.CurveConfig{}, err
				}
				then = &v
			}
			cfg.Blocked = &model.BlockedParams{Dependencies: d.Blocked.Dependencies, ThenCurve: then}
		}
	case model.CurveAccumulator:
		if d.Accumulator != nil {
			pattern, err := RecurrenceToModel(d.Accumulator.Recurrence)
			if err != nil {
				return model.CurveConfig{}, err
			}
			cfg.Accumulator = &model.AccumulatorParams{
				Recurrence:      pattern,
				LastCompletedAt: d.Accumulator.LastCompletedAt,
				NextDueAt:       d.Accumulator.NextDueAt,
				BuildupRate:     d.Accumulator.BuildupRate,
			}
		}
	}
	return cfg, nil
}

func CurveConfigToDTO(cfg model.CurveConfig) dto.CurveConfigDTO {
	out := dto.CurveConfigDTO{Kind: string(cfg.Kind)}
	switch cfg.Kind {
	case model.CurveLinear:
		if cfg.Linear != nil {
			out.Linear = &dto.LinearParamsDTO{StartDate: cfg.Linear.StartDate, Deadline: cfg.Linear.Deadline}
		}
	case model.CurveExponential:
		if cfg.Exponential != nil {
			out.Exponential = &dto.ExponentialParamsDTO{StartDate: cfg.Exponential.StartDate, Deadline: cfg.Exponential.Deadline, Exponent: cfg.Exponential.Exponent}
		}
	case model.CurveHardWindow:
		if cfg.HardWindow != nil {
			out.HardWindow = &dto.HardWindowParamsDTO{WindowStart: cfg.HardWindow.WindowStart, WindowEnd: cfg.HardWindow.WindowEnd, Priority: cfg.HardWindow.Priority}
		}
	case model.CurveBlocked:
		if cfg.Blocked != nil {
			var then *dto.CurveConfigDTO
			if cfg.Blocked.ThenCurve != nil {
				v := CurveConfigToDTO(*cfg.Blocked.ThenCurve)
				then = &v
			}
			out.Blocked = &dto.BlockedParamsDTO{Dependencies: cfg.Blocked.Dependencies, ThenCurve: then}
		}
	case model.CurveAccumulator:
		if cfg.Accumulator != nil {
			out.Accumulator = &dto.AccumulatorParamsDTO{
				Recurrence:      RecurrenceToDTO(cfg.Accumulator.Recurrence),
				LastCompletedAt: cfg.Accumulator.LastCompletedAt,
				NextDueAt:       cfg.Accumulator.NextDueAt,
				BuildupRate:     cfg.Accumulator.BuildupRate,
			}
		}
	}
	return out
}

// TaskToDTO converts a domain task to its read-model, computing Priority at
// evalAt via the given dependency-status lookup.
func TaskToDTO(t *model.Task, evalAt time.Time, deps curve.DependencyStatus) dto.TaskDTO {
	priority := curve.Priority(t, curve.EvalContext{At: evalAt, Deps: deps})
	return dto.TaskDTO{
		ID:                t.ID,
		Title:             t.Title,
		Project:           t.Project,
		BucketID:          t.BucketID,
		Tags:              t.Tags,
		Notes:             t.Notes,
		Color:             t.Color,
		Deadline:          t.Deadline,
		EstimateMinutes:   t.EstimateMinutes,
		RecurrencePattern: RecurrenceToDTO(t.RecurrencePattern),
		WindowStart:       ClockTimeToDTO(t.WindowStart),
		WindowEnd:         ClockTimeToDTO(t.WindowEnd),
		Dependencies:      t.Dependencies,
		CurveConfig:       CurveConfigToDTO(t.CurveConfig),
		Status:            string(t.Status),
		LastCompletedAt:   t.LastCompletedAt,
		NextDueAt:         t.NextDueAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
		Priority:          priority,
	}
}

// BucketToDTO converts a domain bucket to its read-model.
func BucketToDTO(b *model.Bucket) dto.BucketDTO {
	return dto.BucketDTO{
		ID:       b.ID,
		Name:     b.Name,
		Type:     string(b.Type),
		Config:   b.Config,
		Archived: b.Archived,
	}
}

// TaskDTOToModel converts a read-model back into a domain task, for import
// (§6). The returned task carries no derived Priority; callers needing it
// must recompute via curve.Priority.
func TaskDTOToModel(d dto.TaskDTO) (*model.Task, error) {
	windowStart, err := ClockTimeToModel(d.WindowStart)
	if err != nil {
		return nil, err
	}
	windowEnd, err := ClockTimeToModel(d.WindowEnd)
	if err != nil {
		return nil, err
	}
	pattern, err := RecurrenceToModel(d.RecurrencePattern)
	if err != nil {
		return nil, err
	}
	curveCfg, err := CurveConfigToModel(&d.CurveConfig)
	if err != nil {
		return nil, err
	}
	return &model.Task{
		ID:                d.ID,
		Title:             d.Title,
		Project:           d.Project,
		BucketID:          d.BucketID,
		Tags:              d.Tags,
		Notes:             d.Notes,
		Color:             d.Color,
		Deadline:          d.Deadline,
		EstimateMinutes:   d.EstimateMinutes,
		RecurrencePattern: pattern,
		WindowStart:       windowStart,
		WindowEnd:         windowEnd,
		Dependencies:      d.Dependencies,
		CurveConfig:       curveCfg,
		Status:            model.Status(d.Status),
		LastCompletedAt:   d.LastCompletedAt,
		NextDueAt:         d.NextDueAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}, nil
}

// BucketDTOToModel converts a read-model back into a domain bucket.
func BucketDTOToModel(d dto.BucketDTO) *model.Bucket {
	return &model.Bucket{
		ID:       d.ID,
		Name:     d.Name,
		Type:     model.BucketType(d.Type),
		Config:   d.Config,
		Archived: d.Archived,
	}
}

// CompletionDTOToModel converts a read-model back into a domain completion.
func CompletionDTOToModel(d dto.CompletionDTO) *model.Completion {
	return &model.Completion{
		ID:               d.ID,
		TaskID:           d.TaskID,
		CompletedAt:      d.CompletedAt,
		ActualMinutes:    d.ActualMinutes,
		ScheduledMinutes: d.ScheduledMinutes,
		DayOfWeek:        d.DayOfWeek,
		HourOfDay:        d.HourOfDay,
	}
}

// CompletionToDTO converts a domain completion to its read-model.
func CompletionToDTO(c *model.Completion) dto.CompletionDTO {
	return dto.CompletionDTO{
		ID:               c.ID,
		TaskID:           c.TaskID,
		CompletedAt:      c.CompletedAt,
		ActualMinutes:    c.ActualMinutes,
		ScheduledMinutes: c.ScheduledMinutes,
		DayOfWeek:        c.DayOfWeek,
		HourOfDay:        c.HourOfDay,
	}
}
