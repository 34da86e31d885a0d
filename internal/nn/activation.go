package nn

import (
	"math"

	"github.com/strata-ml/strata/internal/tensor"
)

// Activation is an elementwise transform applied to a layer's
// pre-activation, paired with its derivative for backpropagation.
//
// Both methods take the pre-activation matrix z and return a matrix of the
// same shape. Derivative must be a pure function of z: implementations that
// need the forward value recompute it internally rather than caching it, so
// evaluation order never matters.
type Activation interface {
	Activate(z *tensor.Matrix) *tensor.Matrix
	Derivative(z *tensor.Matrix) *tensor.Matrix
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Sigmoid is the logistic activation: a = 1/(1+e^-z).
type Sigmoid struct{}

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid() Sigmoid { return Sigmoid{} }

// Activate applies the logistic function elementwise.
func (Sigmoid) Activate(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(sigmoid)
}

// Derivative computes a(z)·(1−a(z)) elementwise, recomputing a(z) from z.
func (Sigmoid) Derivative(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(v float64) float64 {
		a := sigmoid(v)
		return a * (1 - a)
	})
}

// ReLU is the rectified linear activation: a = max(0, z).
type ReLU struct{}

// NewReLU creates a ReLU activation.
func NewReLU() ReLU { return ReLU{} }

// Activate applies max(0, z) elementwise.
func (ReLU) Activate(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(v float64) float64 { return math.Max(0, v) })
}

// Derivative is 1 where z > 0 and 0 elsewhere. The boundary z == 0 takes
// the zero branch, matching the strict inequality used by Activate.
func (ReLU) Derivative(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// Tanh is the hyperbolic tangent activation.
type Tanh struct{}

// NewTanh creates a Tanh activation.
func NewTanh() Tanh { return Tanh{} }

// Activate applies tanh elementwise.
func (Tanh) Activate(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(math.Tanh)
}

// Derivative computes 1 − tanh(z)² elementwise.
func (Tanh) Derivative(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(v float64) float64 {
		t := math.Tanh(v)
		return 1 - t*t
	})
}

// BinaryStep maps positive pre-activations to 1 and everything else to 0.
//
// The function is not differentiable at 0; the derivative is the zero
// matrix everywhere by convention, so layers using it never propagate
// gradient.
type BinaryStep struct{}

// NewBinaryStep creates a BinaryStep activation.
func NewBinaryStep() BinaryStep { return BinaryStep{} }

// Activate applies the unit step elementwise.
func (BinaryStep) Activate(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// Derivative returns the zero matrix.
func (BinaryStep) Derivative(z *tensor.Matrix) *tensor.Matrix {
	return tensor.New(z.Rows(), z.Cols())
}

// LeakyReLU is a two-slope generalization of ReLU: positive inputs are
// scaled by PosSlope and non-positive inputs by NegSlope.
//
// The classic leaky ReLU is LeakyReLU{NegSlope: 0.01, PosSlope: 1}.
type LeakyReLU struct {
	NegSlope float64
	PosSlope float64
}

// NewLeakyReLU creates a LeakyReLU with the given slopes for the negative
// and positive half-lines.
func NewLeakyReLU(negSlope, posSlope float64) LeakyReLU {
	return LeakyReLU{NegSlope: negSlope, PosSlope: posSlope}
}

// Activate scales each element by the slope of its half-line.
func (l LeakyReLU) Activate(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(v float64) float64 {
		if v > 0 {
			return l.PosSlope * v
		}
		return l.NegSlope * v
	})
}

// Derivative is PosSlope where z > 0 and NegSlope elsewhere.
func (l LeakyReLU) Derivative(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(v float64) float64 {
		if v > 0 {
			return l.PosSlope
		}
		return l.NegSlope
	})
}

// Softmax normalizes a column vector of logits into a probability
// distribution: a_i = e^{z_i} / Σ_j e^{z_j}.
//
// Derivative uses the diagonal term a_i(1−a_i) only, not the full
// Jacobian. That approximation is exact enough when paired with a
// cross-entropy-style cost; callers combining Softmax with other costs
// should be aware the off-diagonal terms are dropped.
type Softmax struct{}

// NewSoftmax creates a Softmax activation.
func NewSoftmax() Softmax { return Softmax{} }

func expSum(z *tensor.Matrix) float64 {
	sum := 0.0
	for i := 0; i < z.Rows(); i++ {
		for j := 0; j < z.Cols(); j++ {
			sum += math.Exp(z.At(i, j))
		}
	}
	return sum
}

// Activate normalizes exponentiated entries by their total.
func (Softmax) Activate(z *tensor.Matrix) *tensor.Matrix {
	sum := expSum(z)
	return z.Apply(func(v float64) float64 { return math.Exp(v) / sum })
}

// Derivative computes the diagonal term a(1−a) elementwise.
func (Softmax) Derivative(z *tensor.Matrix) *tensor.Matrix {
	sum := expSum(z)
	return z.Apply(func(v float64) float64 {
		a := math.Exp(v) / sum
		return a * (1 - a)
	})
}

// Softplus is the smooth approximation of ReLU: a = ln(1+e^z).
type Softplus struct{}

// NewSoftplus creates a Softplus activation.
func NewSoftplus() Softplus { return Softplus{} }

// Activate applies ln(1+e^z) elementwise.
func (Softplus) Activate(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(v float64) float64 { return math.Log1p(math.Exp(v)) })
}

// Derivative is the logistic function e^z/(1+e^z).
func (Softplus) Derivative(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(sigmoid)
}

// Linear is the identity activation: a = z, derivative 1.
type Linear struct{}

// NewLinear creates a Linear activation.
func NewLinear() Linear { return Linear{} }

// Activate returns a copy of z.
func (Linear) Activate(z *tensor.Matrix) *tensor.Matrix {
	return z.Clone()
}

// Derivative returns the all-ones matrix.
func (Linear) Derivative(z *tensor.Matrix) *tensor.Matrix {
	return z.Apply(func(float64) float64 { return 1 })
}
