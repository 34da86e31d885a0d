// Package optim implements the gradient-descent update rules used to train
// strata networks.
//
// This package provides:
//   - Optimizer interface: the common update contract
//   - SGD: plain (stochastic) gradient descent
//   - Momentum: gradient descent with velocity
//   - AdaGrad: per-element adaptive learning rates
//   - Adam: adaptive moment estimation
//
// Stateful optimizers key their accumulators by an explicit caller-chosen
// slot index rather than by parameter identity. A network hands each weight
// and bias tensor a stable slot, so accumulators survive the wholesale
// tensor replacement that happens every step and can never dangle.
//
// Example usage:
//
//	opt := optim.NewMomentum(optim.MomentumConfig{LR: 0.001, Beta: 0.9})
//	for epoch := 0; epoch < epochs; epoch++ {
//	    updated, err := opt.Optimize(slot, param, batchGradients)
//	    ...
//	}
//	opt.Reset() // before reusing the optimizer for an independent run
package optim

import (
	"fmt"

	"github.com/strata-ml/strata/internal/tensor"
)

// ErrEmptyBatch is returned when Optimize is called with no gradients; the
// batch size appears as a divisor in every update rule.
var ErrEmptyBatch = fmt.Errorf("%w: empty gradient batch", tensor.ErrDimensionMismatch)

// Optimizer maps a parameter tensor and one gradient per batch example to
// an updated parameter tensor.
//
// slot identifies the parameter across calls; stateful optimizers use it to
// carry accumulators between steps. Callers must keep slots stable for the
// lifetime of a training run and call Reset before reusing an optimizer for
// an independent run (freshly initialized parameters).
type Optimizer interface {
	Optimize(slot int, param *tensor.Matrix, grads []*tensor.Matrix) (*tensor.Matrix, error)
	Reset()
}

// sumGradients adds all batch gradients together. Update rules divide by
// the batch size themselves, so this is a plain sum, not a mean.
func sumGradients(param *tensor.Matrix, grads []*tensor.Matrix) (*tensor.Matrix, error) {
	if len(grads) == 0 {
		return nil, ErrEmptyBatch
	}
	sum := tensor.New(param.Rows(), param.Cols())
	for _, g := range grads {
		next, err := tensor.Add(sum, g)
		if err != nil {
			return nil, fmt.Errorf("gradient shape differs from parameter: %w", err)
		}
		sum = next
	}
	return sum, nil
}
