package curve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chronotask/chronotask/internal/domain/model"
)

func TestValidate_Linear(t *testing.T) {
	start := time.Now()
	ok := model.CurveConfig{Kind: model.CurveLinear, Linear: &model.LinearParams{StartDate: start, Deadline: start.Add(time.Hour)}}
	assert.NoError(t, Validate(ok, nil))

	bad := model.CurveConfig{Kind: model.CurveLinear, Linear: &model.LinearParams{StartDate: start, Deadline: start}}
	assert.Error(t, Validate(bad, nil))
}

func TestValidate_ExponentialExponentRange(t *testing.T) {
	start := time.Now()
	base := model.ExponentialParams{StartDate: start, Deadline: start.Add(time.Hour)}

	valid := base
	valid.Exponent = 3
	assert.NoError(t, Validate(model.CurveConfig{Kind: model.CurveExponential, Exponential: &valid}, nil))

	tooLow := base
	tooLow.Exponent = 0.5
	assert.Error(t, Validate(model.CurveConfig{Kind: model.CurveExponential, Exponential: &tooLow}, nil))

	tooHigh := base
	tooHigh.Exponent = 6
	assert.Error(t, Validate(model.CurveConfig{Kind: model.CurveExponential, Exponential: &tooHigh}, nil))
}

func TestValidate_HardWindowRequiresNonEmptyWindow(t *testing.T) {
	now := time.Now()
	bad := model.CurveConfig{Kind: model.CurveHardWindow, HardWindow: &model.HardWindowParams{WindowStart: now, WindowEnd: now}}
	assert.Error(t, Validate(bad, nil))
}

func TestValidate_BlockedRejectsDuplicateDependencyLists(t *testing.T) {
	then := model.CurveConfig{Kind: model.CurveLinear, Linear: &model.LinearParams{StartDate: time.Now(), Deadline: time.Now().Add(time.Hour)}}
	cfg := model.CurveConfig{Kind: model.CurveBlocked, Blocked: &model.BlockedParams{Dependencies: []int64{1}, ThenCurve: &then}}
	assert.Error(t, Validate(cfg, []int64{1}))
}

func TestValidate_AccumulatorRequiresRecurrence(t *testing.T) {
	cfg := model.CurveConfig{Kind: model.CurveAccumulator, Accumulator: &model.AccumulatorParams{}}
	assert.Error(t, Validate(cfg, nil))
}

func TestValidate_UnrecognizedKind(t *testing.T) {
	cfg := model.CurveConfig{Kind: model.CurveKind("bogus")}
	assert.Error(t, Validate(cfg, nil))
}
