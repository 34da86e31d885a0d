package optim

import (
	"math"

	"github.com/strata-ml/strata/internal/tensor"
)

// AdaGrad implements per-element adaptive gradient descent.
//
// Update rule, per parameter slot, with g = Σ gradients:
//
//	s = s + g ⊙ g
//	param = param - (lr / batchSize) * g ⊘ sqrt(s + eps)
//
// The squared-gradient accumulator s only grows, so the effective learning
// rate of each element decays over the run.
type AdaGrad struct {
	lr    float64
	eps   float64
	accum map[int]*tensor.Matrix
}

// AdaGradConfig holds configuration for the AdaGrad optimizer.
type AdaGradConfig struct {
	LR  float64 // Learning rate (default: 0.01)
	Eps float64 // Term preventing division by zero (default: 1e-7)
}

// NewAdaGrad creates a new AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) *AdaGrad {
	if config.LR == 0 {
		config.LR = 0.01
	}
	if config.Eps == 0 {
		config.Eps = 1e-7
	}
	return &AdaGrad{
		lr:    config.LR,
		eps:   config.Eps,
		accum: make(map[int]*tensor.Matrix),
	}
}

// Optimize applies one AdaGrad step, growing the slot's squared-gradient
// accumulator.
func (a *AdaGrad) Optimize(slot int, param *tensor.Matrix, grads []*tensor.Matrix) (*tensor.Matrix, error) {
	sum, err := sumGradients(param, grads)
	if err != nil {
		return nil, err
	}

	squared, err := tensor.Hadamard(sum, sum)
	if err != nil {
		return nil, err
	}

	acc, ok := a.accum[slot]
	if !ok {
		acc = tensor.New(param.Rows(), param.Cols())
	}
	acc, err = tensor.Add(acc, squared)
	if err != nil {
		return nil, err
	}
	a.accum[slot] = acc

	scaled, err := tensor.HadamardDiv(sum, acc.Apply(func(x float64) float64 {
		return math.Sqrt(x + a.eps)
	}))
	if err != nil {
		return nil, err
	}

	return tensor.Add(param, tensor.Scale(-a.lr/float64(len(grads)), scaled))
}

// Reset discards all squared-gradient accumulators.
func (a *AdaGrad) Reset() {
	a.accum = make(map[int]*tensor.Matrix)
}
