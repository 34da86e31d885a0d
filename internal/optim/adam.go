package optim

import (
	"math"

	"github.com/strata-ml/strata/internal/tensor"
)

// Adam implements adaptive moment estimation.
//
// Adam combines momentum's first-moment average with AdaGrad-style
// second-moment scaling and corrects both for their zero initialization.
// Update rule, per parameter slot, with g = Σ gradients and n = batchSize:
//
//	t = t + 1                                  // global step counter
//	m = beta1 * m - ((1-beta1) / n) * g        // first moment
//	s = beta2 * s + ((1-beta2) / n²) * g ⊙ g   // second moment
//	m̂ = m / (1 - beta1^t)                      // bias correction
//	ŝ = s / (1 - beta2^t)
//	param = param + lr * m̂ ⊘ sqrt(ŝ + eps)
//
// The sign convention folds the descent direction into the first moment,
// so the final update is an addition.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	t     int
	m     map[int]*tensor.Matrix
	s     map[int]*tensor.Matrix
}

// AdamConfig holds configuration for the Adam optimizer.
type AdamConfig struct {
	LR    float64 // Learning rate (default: 0.001)
	Beta1 float64 // First-moment decay (default: 0.9)
	Beta2 float64 // Second-moment decay (default: 0.999)
	Eps   float64 // Term preventing division by zero (default: 1e-7)
}

// NewAdam creates a new Adam optimizer.
func NewAdam(config AdamConfig) *Adam {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Beta1 == 0 {
		config.Beta1 = 0.9
	}
	if config.Beta2 == 0 {
		config.Beta2 = 0.999
	}
	if config.Eps == 0 {
		config.Eps = 1e-7
	}
	return &Adam{
		lr:    config.LR,
		beta1: config.Beta1,
		beta2: config.Beta2,
		eps:   config.Eps,
		m:     make(map[int]*tensor.Matrix),
		s:     make(map[int]*tensor.Matrix),
	}
}

// Timestep returns the global step counter, incremented once per Optimize
// call.
func (a *Adam) Timestep() int { return a.t }

// Optimize applies one Adam step, updating the slot's moment estimates.
func (a *Adam) Optimize(slot int, param *tensor.Matrix, grads []*tensor.Matrix) (*tensor.Matrix, error) {
	sum, err := sumGradients(param, grads)
	if err != nil {
		return nil, err
	}
	a.t++
	n := float64(len(grads))

	mOld, ok := a.m[slot]
	if !ok {
		mOld = tensor.New(param.Rows(), param.Cols())
	}
	sOld, ok := a.s[slot]
	if !ok {
		sOld = tensor.New(param.Rows(), param.Cols())
	}

	mNew, err := tensor.Add(tensor.Scale(a.beta1, mOld), tensor.Scale(-(1-a.beta1)/n, sum))
	if err != nil {
		return nil, err
	}

	squared, err := tensor.Hadamard(sum, sum)
	if err != nil {
		return nil, err
	}
	sNew, err := tensor.Add(tensor.Scale(a.beta2, sOld), tensor.Scale((1-a.beta2)/(n*n), squared))
	if err != nil {
		return nil, err
	}

	a.m[slot] = mNew
	a.s[slot] = sNew

	mHat := tensor.Scale(1/(1-math.Pow(a.beta1, float64(a.t))), mNew)
	sHat := tensor.Scale(1/(1-math.Pow(a.beta2, float64(a.t))), sNew)

	step, err := tensor.HadamardDiv(mHat, sHat.Apply(func(x float64) float64 {
		return math.Sqrt(x + a.eps)
	}))
	if err != nil {
		return nil, err
	}

	return tensor.Add(param, tensor.Scale(a.lr, step))
}

// Reset discards all moment estimates and restarts the step counter.
func (a *Adam) Reset() {
	a.m = make(map[int]*tensor.Matrix)
	a.s = make(map[int]*tensor.Matrix)
	a.t = 0
}
