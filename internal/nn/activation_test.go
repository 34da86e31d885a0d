package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-ml/strata/internal/tensor"
)

func column(values ...float64) *tensor.Matrix {
	return tensor.FromColumn(values)
}

func TestSigmoid(t *testing.T) {
	s := NewSigmoid()

	a := s.Activate(column(0))
	assert.InDelta(t, 0.5, a.At(0, 0), 1e-12)

	d := s.Derivative(column(0))
	assert.InDelta(t, 0.25, d.At(0, 0), 1e-12)
}

func TestSigmoid_DerivativeIsPureFunctionOfZ(t *testing.T) {
	s := NewSigmoid()
	z := column(1.25)

	// Evaluating the derivative before and after Activate must agree.
	before := s.Derivative(z)
	s.Activate(z)
	after := s.Derivative(z)

	assert.True(t, before.Equal(after))
}

func TestReLU(t *testing.T) {
	r := NewReLU()

	a := r.Activate(column(-2, 3))
	assert.Equal(t, 0.0, a.At(0, 0))
	assert.Equal(t, 3.0, a.At(1, 0))

	d := r.Derivative(column(-2, 3))
	assert.Equal(t, 0.0, d.At(0, 0))
	assert.Equal(t, 1.0, d.At(1, 0))
}

func TestReLU_BoundaryConvention(t *testing.T) {
	// z == 0 takes the zero branch, same predicate as the forward pass.
	d := NewReLU().Derivative(column(0))
	assert.Equal(t, 0.0, d.At(0, 0))
}

func TestTanh(t *testing.T) {
	h := NewTanh()

	a := h.Activate(column(0.5))
	assert.InDelta(t, math.Tanh(0.5), a.At(0, 0), 1e-12)

	d := h.Derivative(column(0.5))
	th := math.Tanh(0.5)
	assert.InDelta(t, 1-th*th, d.At(0, 0), 1e-12)
}

func TestBinaryStep(t *testing.T) {
	b := NewBinaryStep()

	a := b.Activate(column(-1, 0, 2))
	assert.Equal(t, 0.0, a.At(0, 0))
	assert.Equal(t, 0.0, a.At(1, 0))
	assert.Equal(t, 1.0, a.At(2, 0))

	d := b.Derivative(column(-1, 0, 2))
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.0, d.At(i, 0))
	}
}

func TestLeakyReLU_TwoSlopes(t *testing.T) {
	l := NewLeakyReLU(0.1, 2.0)

	a := l.Activate(column(-3, 4))
	assert.InDelta(t, -0.3, a.At(0, 0), 1e-12)
	assert.InDelta(t, 8.0, a.At(1, 0), 1e-12)

	d := l.Derivative(column(-3, 4))
	assert.Equal(t, 0.1, d.At(0, 0))
	assert.Equal(t, 2.0, d.At(1, 0))
}

func TestSoftmax_SumsToOne(t *testing.T) {
	a := NewSoftmax().Activate(column(1, 2, 3))

	sum := 0.0
	for i := 0; i < a.Rows(); i++ {
		sum += a.At(i, 0)
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	// Larger logits get larger mass.
	assert.Greater(t, a.At(2, 0), a.At(1, 0))
	assert.Greater(t, a.At(1, 0), a.At(0, 0))
}

func TestSoftmax_DiagonalDerivative(t *testing.T) {
	z := column(1, 2, 3)
	sm := NewSoftmax()
	a := sm.Activate(z)
	d := sm.Derivative(z)

	for i := 0; i < z.Rows(); i++ {
		ai := a.At(i, 0)
		require.InDelta(t, ai*(1-ai), d.At(i, 0), 1e-12, "row %d", i)
	}
}

func TestSoftplus(t *testing.T) {
	sp := NewSoftplus()

	a := sp.Activate(column(1))
	assert.InDelta(t, math.Log1p(math.E), a.At(0, 0), 1e-12)

	d := sp.Derivative(column(1))
	assert.InDelta(t, sigmoid(1), d.At(0, 0), 1e-12)
}

func TestLinear(t *testing.T) {
	l := NewLinear()

	z := column(-7, 0, 4)
	a := l.Activate(z)
	assert.True(t, a.Equal(z))

	d := l.Derivative(z)
	for i := 0; i < z.Rows(); i++ {
		assert.Equal(t, 1.0, d.At(i, 0))
	}
}

func TestActivations_PreserveShape(t *testing.T) {
	z := tensor.Rand(4, 1)
	acts := []Activation{
		NewSigmoid(), NewReLU(), NewTanh(), NewBinaryStep(),
		NewLeakyReLU(0.01, 1), NewSoftmax(), NewSoftplus(), NewLinear(),
	}
	for _, act := range acts {
		a := act.Activate(z)
		d := act.Derivative(z)
		require.Equal(t, z.Rows(), a.Rows())
		require.Equal(t, z.Cols(), a.Cols())
		require.Equal(t, z.Rows(), d.Rows())
		require.Equal(t, z.Cols(), d.Cols())
	}
}
