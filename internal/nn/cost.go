package nn

import (
	"fmt"

	"github.com/strata-ml/strata/internal/tensor"
)

// Cost is a scalar loss paired with its gradient with respect to the
// network's final activation.
//
// Loss returns the scalar loss for one example; Gradient returns
// ∂loss/∂actual with the same shape as actual. Additional cost kinds plug
// in through this same two-method contract.
type Cost interface {
	Loss(actual, expected *tensor.Matrix) (float64, error)
	Gradient(actual, expected *tensor.Matrix) (*tensor.Matrix, error)
}

// LeastSquares is the squared-error cost: loss = ‖actual−expected‖²/2,
// gradient = actual−expected.
type LeastSquares struct{}

// NewLeastSquares creates a LeastSquares cost.
func NewLeastSquares() LeastSquares { return LeastSquares{} }

// Loss computes half the squared Euclidean norm of the residual.
func (LeastSquares) Loss(actual, expected *tensor.Matrix) (float64, error) {
	diff, err := tensor.Sub(actual, expected)
	if err != nil {
		return 0, err
	}
	norm, err := diff.Norm()
	if err != nil {
		return 0, err
	}
	return norm * norm / 2, nil
}

// Gradient returns the residual actual−expected.
func (LeastSquares) Gradient(actual, expected *tensor.Matrix) (*tensor.Matrix, error) {
	return tensor.Sub(actual, expected)
}

// MeanAbsolute is the norm-based absolute cost: loss = ‖actual−expected‖/2,
// gradient = (actual−expected)/(2·‖actual−expected‖).
//
// Despite the name this uses the 2-norm of the residual, not a per-element
// absolute sum.
type MeanAbsolute struct{}

// NewMeanAbsolute creates a MeanAbsolute cost.
func NewMeanAbsolute() MeanAbsolute { return MeanAbsolute{} }

// Loss computes half the Euclidean norm of the residual.
func (MeanAbsolute) Loss(actual, expected *tensor.Matrix) (float64, error) {
	diff, err := tensor.Sub(actual, expected)
	if err != nil {
		return 0, err
	}
	norm, err := diff.Norm()
	if err != nil {
		return 0, err
	}
	return norm / 2, nil
}

// Gradient normalizes the residual by twice its own norm.
//
// Returns ErrSingular when the residual norm is exactly zero (every output
// equals its target), since the gradient would divide by zero.
func (MeanAbsolute) Gradient(actual, expected *tensor.Matrix) (*tensor.Matrix, error) {
	diff, err := tensor.Sub(actual, expected)
	if err != nil {
		return nil, err
	}
	norm, err := diff.Norm()
	if err != nil {
		return nil, err
	}
	if norm == 0 {
		return nil, fmt.Errorf("%w: zero residual in mean-absolute gradient", ErrSingular)
	}
	return tensor.Scale(1/(2*norm), diff), nil
}
