package optim

import (
	"github.com/strata-ml/strata/internal/tensor"
)

// SGD implements plain gradient descent.
//
// Update rule:
//
//	param = param - (lr / batchSize) * Σ gradients
//
// Even though titled "stochastic" gradient descent it serves equally for
// mini-batch and full-batch descents; the distinction lives entirely in how
// the caller draws the batch. Best kept with a small learning rate, around
// 0.001 to 0.0001.
type SGD struct {
	lr float64
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR float64 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{lr: config.LR}
}

// Optimize applies one plain gradient-descent step.
func (s *SGD) Optimize(_ int, param *tensor.Matrix, grads []*tensor.Matrix) (*tensor.Matrix, error) {
	sum, err := sumGradients(param, grads)
	if err != nil {
		return nil, err
	}
	return tensor.Add(param, tensor.Scale(-s.lr/float64(len(grads)), sum))
}

// Reset is a no-op; SGD carries no state between steps.
func (s *SGD) Reset() {}
