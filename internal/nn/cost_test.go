package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-ml/strata/internal/tensor"
)

func TestLeastSquares(t *testing.T) {
	cost := NewLeastSquares()
	actual := column(3, 4)
	expected := column(0, 0)

	// ||(3,4)||² / 2 = 25/2
	loss, err := cost.Loss(actual, expected)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, loss, 1e-12)

	grad, err := cost.Gradient(actual, expected)
	require.NoError(t, err)
	assert.Equal(t, 3.0, grad.At(0, 0))
	assert.Equal(t, 4.0, grad.At(1, 0))
}

func TestLeastSquares_ShapeMismatch(t *testing.T) {
	cost := NewLeastSquares()
	_, err := cost.Loss(column(1, 2), column(1))
	require.ErrorIs(t, err, tensor.ErrDimensionMismatch)
}

// TestMeanAbsolute_IsNormBased pins the historical behavior: the loss is
// half the 2-norm of the residual, not a per-element absolute sum.
func TestMeanAbsolute_IsNormBased(t *testing.T) {
	cost := NewMeanAbsolute()
	actual := column(3, 4)
	expected := column(0, 0)

	loss, err := cost.Loss(actual, expected)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, loss, 1e-12) // ||(3,4)||/2 = 5/2, L1 would give 3.5

	grad, err := cost.Gradient(actual, expected)
	require.NoError(t, err)
	// residual / (2·norm) = (3,4)/10
	assert.InDelta(t, 0.3, grad.At(0, 0), 1e-12)
	assert.InDelta(t, 0.4, grad.At(1, 0), 1e-12)
}

func TestMeanAbsolute_ZeroResidualIsSingular(t *testing.T) {
	cost := NewMeanAbsolute()
	v := column(1, 2, 3)

	_, err := cost.Gradient(v, v.Clone())
	require.ErrorIs(t, err, ErrSingular)

	// The loss itself is fine at zero residual.
	loss, err := cost.Loss(v, v.Clone())
	require.NoError(t, err)
	assert.Equal(t, 0.0, loss)
}
