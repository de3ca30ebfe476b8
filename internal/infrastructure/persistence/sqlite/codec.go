package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chronotask/chronotask/internal/domain/model"
)

// clockTimeJSON/recurrencePatternJSON/curveConfigJSON mirror their domain
// counterparts field-for-field so encoding/json can (de)serialize the
// pointer-heavy tagged unions without custom MarshalJSON methods on the
// domain types themselves — the domain package stays free of persistence
// concerns.

type clockTimeJSON struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func toClockTimeJSON(c *model.ClockTime) *clockTimeJSON {
	if c == nil {
		return nil
	}
	return &clockTimeJSON{Hour: c.Hour, Minute: c.Minute}
}

func (c *clockTimeJSON) toModel() *model.ClockTime {
	if c == nil {
		return nil
	}
	return &model.ClockTime{Hour: c.Hour, Minute: c.Minute}
}

type recurrencePatternJSON struct {
	Mode       model.RecurrenceMode `json:"mode"`
	Type       model.RecurrenceType `json:"type"`
	Interval   int                  `json:"interval,omitempty"`
	Unit       model.IntervalUnit   `json:"unit,omitempty"`
	DayOfWeek  *int                 `json:"day_of_week,omitempty"`
	DaysOfWeek []int                `json:"days_of_week,omitempty"`
	TimeOfDay  *clockTimeJSON       `json:"time_of_day,omitempty"`
	Anchor     *time.Time           `json:"anchor,omitempty"`
}

func recurrenceToJSON(p *model.RecurrencePattern) *recurrencePatternJSON {
	if p == nil {
		return nil
	}
	return &recurrencePatternJSON{
		Mode:       p.Mode,
		Type:       p.Type,
		Interval:   p.Interval,
		Unit:       p.Unit,
		DayOfWeek:  p.DayOfWeek,
		DaysOfWeek: p.DaysOfWeek,
		TimeOfDay:  toClockTimeJSON(p.TimeOfDay),
		Anchor:     p.Anchor,
	}
}

func (j *recurrencePatternJSON) toModel() *model.RecurrencePattern {
	if j == nil {
		return nil
	}
	return &model.RecurrencePattern{
		Mode:       j.Mode,
		Type:       j.Type,
		Interval:   j.Interval,
		Unit:       j.Unit,
		DayOfWeek:  j.DayOfWeek,
		DaysOfWeek: j.DaysOfWeek,
		TimeOfDay:  j.TimeOfDay.toModel(),
		Anchor:     j.Anchor,
	}
}

type curveConfigJSON struct {
	Kind model.CurveKind `json:"kind"`

	Linear *struct {
		StartDate time.Time `json:"start_date"`
		Deadline  time.Time `json:"deadline"`
	} `json:"linear,omitempty"`

	Exponential *struct {
		StartDate time.Time `json:"start_date"`
		Deadline  time.Time `json:"deadline"`
		Exponent  float64   `json:"exponent"`
	} `json:"exponential,omitempty"`

	HardWindow *struct {
		WindowStart time.Time `json:"window_start"`
		WindowEnd   time.Time `json:"window_end"`
		Priority    float64   `json:"priority"`
	} `json:"hard_window,omitempty"`

	Blocked *struct {
		Dependencies []int64           `json:"dependencies,omitempty"`
		ThenCurve    *curveConfigJSON  `json:"then_curve,omitempty"`
	} `json:"blocked,omitempty"`

	Accumulator *struct {
		Recurrence      *recurrencePatternJSON `json:"recurrence,omitempty"`
		LastCompletedAt *time.Time             `json:"last_completed_at,omitempty"`
		NextDueAt       *time.Time             `json:"next_due_at,omitempty"`
		BuildupRate     float64                `json:"buildup_rate"`
	} `json:"accumulator,omitempty"`
}

func curveConfigToJSON(cfg model.CurveConfig) *curveConfigJSON {
	out := &curveConfigJSON{Kind: cfg.Kind}
	switch cfg.Kind {
	case model.CurveLinear:
		if cfg.Linear != nil {
			out.Linear = &struct {
				StartDate time.Time `json:"start_date"`
				Deadline  time.Time `json:"deadline"`
			}{cfg.Linear.StartDate, cfg.Linear.Deadline}
		}
	case model.CurveExponential:
		if cfg.Exponential != nil {
			out.Exponential = &struct {
				StartDate time.Time `json:"start_date"`
				Deadline  time.Time `json:"deadline"`
				Exponent  float64   `json:"exponent"`
			}{cfg.Exponential.StartDate, cfg.Exponential.Deadline, cfg.Exponential.Exponent}
		}
	case model.CurveHardWindow:
		if cfg.HardWindow != nil {
			out.HardWindow = &struct {
				WindowStart time.Time `json:"window_start"`
				WindowEnd   time.Time `json:"window_end"`
				Priority    float64   `json:"priority"`
			}{cfg.HardWindow.WindowStart, cfg.HardWindow.WindowEnd, cfg.HardWindow.Priority}
		}
	case model.CurveBlocked:
		if cfg.Blocked != nil {
			var then *curveConfigJSON
			if cfg.Blocked.ThenCurve != nil {
				then = curveConfigToJSON(*cfg.Blocked.ThenCurve)
			}
			out.Blocked = &struct {
				Dependencies []int64          `json:"dependencies,omitempty"`
				ThenCurve    *curveConfigJSON `json:"then_curve,omitempty"`
			}{cfg.Blocked.Dependencies, then}
		}
	case model.CurveAccumulator:
		if cfg.Accumulator != nil {
			out.Accumulator = &struct {
				Recurrence      *recurrencePatternJSON `json:"recurrence,omitempty"`
				LastCompletedAt *time.Time             `json:"last_completed_at,omitempty"`
				NextDueAt       *time.Time             `json:"next_due_at,omitempty"`
				BuildupRate     float64                `json:"buildup_rate"`
			}{recurrenceToJSON(cfg.Accumulator.Recurrence), cfg.Accumulator.LastCompletedAt, cfg.Accumulator.NextDueAt, cfg.Accumulator.BuildupRate}
		}
	}
	return out
}

func (j *curveConfigJSON) toModel() model.CurveConfig {
	if j == nil {
		return model.CurveConfig{}
	}
	cfg := model.CurveConfig{Kind: j.Kind}
	switch j.Kind {
	case model.CurveLinear:
		if j.Linear != nil {
			cfg.Linear = &model.LinearParams{StartDate: j.Linear.StartDate, Deadline: j.Linear.Deadline}
		}
	case model.CurveExponential:
		if j.Exponential != nil {
			cfg.Exponential = &model.ExponentialParams{StartDate: j.Exponential.StartDate, Deadline: j.Exponential.Deadline, Exponent: j.Exponential.Exponent}
		}
	case model.CurveHardWindow:
		if j.HardWindow != nil {
			cfg.HardWindow = &model.HardWindowParams{WindowStart: j.HardWindow.WindowStart, WindowEnd: j.HardWindow.WindowEnd, Priority: j.HardWindow.Priority}
		}
	case model.CurveBlocked:
		if j.Blocked != nil {
			var then *model.CurveConfig
			if j.Blocked.ThenCurve != nil {
				v := j.Blocked.ThenCurve.toModel()
				then = &v
			}
			cfg.Blocked = &model.BlockedParams{Dependencies: j.Blocked.Dependencies, ThenCurve: then}
		}
	case model.CurveAccumulator:
		if j.Accumulator != nil {
			cfg.Accumulator = &model.AccumulatorParams{
				Recurrence:      j.Accumulator.Recurrence.toModel(),
				LastCompletedAt: j.Accumulator.LastCompletedAt,
				NextDueAt:       j.Accumulator.NextDueAt,
				BuildupRate:     j.Accumulator.BuildupRate,
			}
		}
	}
	return cfg
}

func marshalCurveConfig(cfg model.CurveConfig) (string, error) {
	b, err := json.Marshal(curveConfigToJSON(cfg))
	if err != nil {
		return "", fmt.Errorf("marshal curve config failed: %w", err)
	}
	return string(b), nil
}

func unmarshalCurveConfig(s string) (model.CurveConfig, error) {
	if s == "" {
		return model.CurveConfig{}, nil
	}
	var j curveConfigJSON
	if err := json.Unmarshal([]byte(s), &j); err != nil {
		return model.CurveConfig{}, fmt.Errorf("unmarshal curve config failed: %w", err)
	}
	return j.toModel(), nil
}

func marshalRecurrence(p *model.RecurrencePattern) (*string, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(recurrenceToJSON(p))
	if err != nil {
		return nil, fmt.Errorf("marshal recurrence pattern failed: %w", err)
	}
	s := string(b)
	return &s, nil
}

func unmarshalRecurrence(s *string) (*model.RecurrencePattern, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	var j recurrencePatternJSON
	if err := json.Unmarshal([]byte(*s), &j); err != nil {
		return nil, fmt.Errorf("unmarshal recurrence pattern failed: %w", err)
	}
	return j.toModel(), nil
}

func marshalInt64Slice(ids []int64) (string, error) {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshal id slice failed: %w", err)
	}
	return string(b), nil
}

func unmarshalInt64Slice(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(s), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal id slice failed: %w", err)
	}
	return ids, nil
}

func marshalStringSlice(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	b, err := json.Marshal(ss)
	if err != nil {
		return "", fmt.Errorf("marshal string slice failed: %w", err)
	}
	return string(b), nil
}

func unmarshalStringSlice(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var ss []string
	if err := json.Unmarshal([]byte(s), &ss); err != nil {
		return nil, fmt.Errorf("unmarshal string slice failed: %w", err)
	}
	return ss, nil
}

func marshalBucketConfig(cfg map[string]interface{}) (string, error) {
	if cfg == nil {
		cfg = map[string]interface{}{}
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal bucket config failed: %w", err)
	}
	return string(b), nil
}

func unmarshalBucketConfig(s string) (map[string]interface{}, error) {
	if s == "" {
		return nil, nil
	}
	var cfg map[string]interface{}
	if err := json.Unmarshal([]byte(s), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal bucket config failed: %w", err)
	}
	return cfg, nil
}
