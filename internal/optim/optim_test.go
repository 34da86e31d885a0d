package optim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-ml/strata/internal/tensor"
)

func scalar(v float64) *tensor.Matrix {
	return tensor.FromColumn([]float64{v})
}

// TestSGD_SingleStep checks the canonical single-parameter scenario:
// weight 2.0, gradient 1.0, lr 0.1, batch size 1 ⇒ 1.9.
func TestSGD_SingleStep(t *testing.T) {
	opt := NewSGD(SGDConfig{LR: 0.1})

	updated, err := opt.Optimize(0, scalar(2.0), []*tensor.Matrix{scalar(1.0)})
	require.NoError(t, err)
	assert.InDelta(t, 1.9, updated.At(0, 0), 1e-12)
}

func TestSGD_ScalesByBatchSize(t *testing.T) {
	opt := NewSGD(SGDConfig{LR: 0.1})

	// Two identical gradients: sum 2.0, divided by batch size 2 ⇒ same step.
	updated, err := opt.Optimize(0, scalar(2.0), []*tensor.Matrix{scalar(1.0), scalar(1.0)})
	require.NoError(t, err)
	assert.InDelta(t, 1.9, updated.At(0, 0), 1e-12)
}

func TestSGD_EmptyBatch(t *testing.T) {
	opt := NewSGD(SGDConfig{LR: 0.1})
	_, err := opt.Optimize(0, scalar(2.0), nil)
	require.ErrorIs(t, err, ErrEmptyBatch)
	require.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}

func TestSGD_GradientShapeMismatch(t *testing.T) {
	opt := NewSGD(SGDConfig{LR: 0.1})
	_, err := opt.Optimize(0, scalar(2.0), []*tensor.Matrix{tensor.New(2, 2)})
	require.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}

// TestMomentum_TwoSteps checks velocity retention: two identical unit
// gradients with beta 0.9, lr 0.1 step the parameter by 0.1 then 0.19.
func TestMomentum_TwoSteps(t *testing.T) {
	opt := NewMomentum(MomentumConfig{LR: 0.1, Beta: 0.9})
	param := scalar(1.0)

	// Step 1: m = -0.1, param = 0.9.
	param, err := opt.Optimize(0, param, []*tensor.Matrix{scalar(1.0)})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, param.At(0, 0), 1e-12)

	// Step 2: m = 0.9·(-0.1) - 0.1 = -0.19, param = 0.71.
	param, err = opt.Optimize(0, param, []*tensor.Matrix{scalar(1.0)})
	require.NoError(t, err)
	assert.InDelta(t, 0.71, param.At(0, 0), 1e-12)
}

func TestMomentum_SlotsAreIndependent(t *testing.T) {
	opt := NewMomentum(MomentumConfig{LR: 0.1, Beta: 0.9})

	// Build velocity on slot 0.
	_, err := opt.Optimize(0, scalar(1.0), []*tensor.Matrix{scalar(1.0)})
	require.NoError(t, err)

	// Slot 1 starts from a zero accumulator regardless.
	updated, err := opt.Optimize(1, scalar(1.0), []*tensor.Matrix{scalar(1.0)})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, updated.At(0, 0), 1e-12)
}

func TestMomentum_ResetClearsVelocity(t *testing.T) {
	opt := NewMomentum(MomentumConfig{LR: 0.1, Beta: 0.9})

	param, err := opt.Optimize(0, scalar(1.0), []*tensor.Matrix{scalar(1.0)})
	require.NoError(t, err)
	opt.Reset()

	// After Reset the step matches a first step again.
	param, err = opt.Optimize(0, param, []*tensor.Matrix{scalar(1.0)})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, param.At(0, 0), 1e-12)
}

func TestAdaGrad_SingleStep(t *testing.T) {
	eps := 1e-7
	opt := NewAdaGrad(AdaGradConfig{LR: 0.1, Eps: eps})

	// g = 2: s = 4, step = -0.1 · 2/√(4+ε).
	updated, err := opt.Optimize(0, scalar(1.0), []*tensor.Matrix{scalar(2.0)})
	require.NoError(t, err)
	want := 1.0 - 0.1*2.0/math.Sqrt(4.0+eps)
	assert.InDelta(t, want, updated.At(0, 0), 1e-12)
}

func TestAdaGrad_AccumulatorGrows(t *testing.T) {
	eps := 1e-7
	opt := NewAdaGrad(AdaGradConfig{LR: 0.1, Eps: eps})
	param := scalar(1.0)

	param, err := opt.Optimize(0, param, []*tensor.Matrix{scalar(2.0)})
	require.NoError(t, err)
	first := 1.0 - param.At(0, 0)

	before := param.At(0, 0)
	param, err = opt.Optimize(0, param, []*tensor.Matrix{scalar(2.0)})
	require.NoError(t, err)
	second := before - param.At(0, 0)

	// Same gradient, larger accumulator, smaller effective step.
	assert.Less(t, second, first)
	assert.InDelta(t, 0.1*2.0/math.Sqrt(8.0+eps), second, 1e-12)
}

func TestAdam_FirstStepMath(t *testing.T) {
	lr, b1, b2, eps := 0.001, 0.9, 0.999, 1e-7
	opt := NewAdam(AdamConfig{LR: lr, Beta1: b1, Beta2: b2, Eps: eps})

	g := 2.0
	updated, err := opt.Optimize(0, scalar(1.0), []*tensor.Matrix{scalar(g)})
	require.NoError(t, err)

	m := -(1 - b1) * g       // batch size 1
	s := (1 - b2) * g * g    // batch size 1
	mHat := m / (1 - b1)     // t = 1
	sHat := s / (1 - b2)     // t = 1
	want := 1.0 + lr*mHat/math.Sqrt(sHat+eps)

	assert.InDelta(t, want, updated.At(0, 0), 1e-12)
	assert.Equal(t, 1, opt.Timestep())
}

func TestAdam_DescendsTowardMinimum(t *testing.T) {
	opt := NewAdam(AdamConfig{LR: 0.1})
	param := scalar(1.0)

	// Constant positive gradient: parameter must decrease monotonically.
	for i := 0; i < 5; i++ {
		prev := param.At(0, 0)
		var err error
		param, err = opt.Optimize(0, param, []*tensor.Matrix{scalar(1.0)})
		require.NoError(t, err)
		assert.Less(t, param.At(0, 0), prev, "step %d", i)
	}
}

func TestAdam_ResetRestartsTimestep(t *testing.T) {
	opt := NewAdam(AdamConfig{})
	_, err := opt.Optimize(0, scalar(1.0), []*tensor.Matrix{scalar(1.0)})
	require.NoError(t, err)
	require.Equal(t, 1, opt.Timestep())

	opt.Reset()
	assert.Equal(t, 0, opt.Timestep())
}

func TestConfigDefaults(t *testing.T) {
	// Zero-value configs pick the documented defaults.
	assert.Equal(t, 0.01, NewSGD(SGDConfig{}).lr)

	m := NewMomentum(MomentumConfig{})
	assert.Equal(t, 0.01, m.lr)
	assert.Equal(t, 0.9, m.beta)

	a := NewAdam(AdamConfig{})
	assert.Equal(t, 0.001, a.lr)
	assert.Equal(t, 0.9, a.beta1)
	assert.Equal(t, 0.999, a.beta2)
	assert.Equal(t, 1e-7, a.eps)

	g := NewAdaGrad(AdaGradConfig{})
	assert.Equal(t, 0.01, g.lr)
	assert.Equal(t, 1e-7, g.eps)
}
