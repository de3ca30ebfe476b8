package model

import "time"

// CurveKind identifies the closed set of CurveConfig variants (§4.2).
type CurveKind string

const (
	CurveLinear      CurveKind = "linear"
	CurveExponential CurveKind = "exponential"
	CurveHardWindow  CurveKind = "hard_window"
	CurveBlocked     CurveKind = "blocked"
	CurveAccumulator CurveKind = "accumulator"
)

// CurveConfig is the tagged union of priority curve parameters. Exactly one
// of the variant fields is populated, selected by Kind. Dispatch over Kind
// is exhaustive by construction (see internal/domain/curve).
type CurveConfig struct {
	Kind CurveKind

	Linear      *LinearParams
	Exponential *ExponentialParams
	HardWindow  *HardWindowParams
	Blocked     *BlockedParams
	Accumulator *AccumulatorParams
}

// LinearParams parametrizes the Linear variant.
type LinearParams struct {
	StartDate time.Time
	Deadline  time.Time
}

// ExponentialParams parametrizes the Exponential variant: linear params plus
// a shaping exponent in [1,5], default 2.0.
type ExponentialParams struct {
	StartDate time.Time
	Deadline  time.Time
	Exponent  float64
}

// HardWindowParams parametrizes the HardWindow variant: an absolute
// datetime interval (not a daily HH:MM window — see Task.WindowStart/End
// for that) during which the task carries a fixed priority.
type HardWindowParams struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Priority    float64
}

// BlockedParams parametrizes the Blocked variant: priority is 0 until every
// id in Dependencies is Completed, then delegates to ThenCurve.
//
// Per §9's Open Question, the task-level Task.Dependencies list is
// authoritative; a BlockedParams.Dependencies that duplicates it is
// rejected at validation (internal/domain/curve.Validate).
type BlockedParams struct {
	Dependencies []int64
	ThenCurve    *CurveConfig
}

// AccumulatorParams parametrizes the Accumulator variant.
type AccumulatorParams struct {
	Recurrence      *RecurrencePattern
	LastCompletedAt *time.Time
	NextDueAt       *time.Time
	BuildupRate     float64
}

// DefaultExponent is applied when ExponentialParams.Exponent is zero.
const DefaultExponent = 2.0

// DefaultBuildupRate is the BuildupRate that curve inference assigns to
// Accumulator curves. The evaluator does not read BuildupRate.
const DefaultBuildupRate = 0.1

// DefaultHardWindowPriority is applied when HardWindowParams.Priority is zero.
const DefaultHardWindowPriority = 1.0
