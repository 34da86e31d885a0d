// Copyright 2025 The Strata Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for strata's neural network layer:
// activation functions, cost functions, and the Sequential model.
//
// Example:
//
//	net, _ := nn.NewSequential(1, 64, 32, 1)
//	_ = net.SetActivations(nn.NewSigmoid(), nn.NewSigmoid(), nn.NewLinear())
//	_ = net.LoadSamples(ds.Inputs, ds.Targets)
//	err := net.Train(nn.TrainConfig{
//	    Epochs:    50000,
//	    BatchSize: 10,
//	    Optimizer: optim.NewMomentum(optim.MomentumConfig{LR: 0.001, Beta: 0.9}),
//	    Cost:      nn.NewLeastSquares(),
//	})
package nn

import (
	"github.com/strata-ml/strata/internal/nn"
)

// Sentinel errors.
var (
	// ErrConfiguration reports a request the network's configuration
	// cannot support.
	ErrConfiguration = nn.ErrConfiguration

	// ErrSingular reports a cost gradient that would divide by a zero
	// residual norm.
	ErrSingular = nn.ErrSingular
)

// Activation is an elementwise transform with a paired derivative.
type Activation = nn.Activation

// Activation variants.
type (
	// Sigmoid is the logistic activation.
	Sigmoid = nn.Sigmoid
	// ReLU is the rectified linear activation.
	ReLU = nn.ReLU
	// Tanh is the hyperbolic tangent activation.
	Tanh = nn.Tanh
	// BinaryStep is the unit-step activation with zero gradient.
	BinaryStep = nn.BinaryStep
	// LeakyReLU is a two-slope generalization of ReLU.
	LeakyReLU = nn.LeakyReLU
	// Softmax normalizes logits into a probability distribution.
	Softmax = nn.Softmax
	// Softplus is the smooth approximation of ReLU.
	Softplus = nn.Softplus
	// Linear is the identity activation.
	Linear = nn.Linear
)

// NewSigmoid creates a Sigmoid activation.
func NewSigmoid() Sigmoid { return nn.NewSigmoid() }

// NewReLU creates a ReLU activation.
func NewReLU() ReLU { return nn.NewReLU() }

// NewTanh creates a Tanh activation.
func NewTanh() Tanh { return nn.NewTanh() }

// NewBinaryStep creates a BinaryStep activation.
func NewBinaryStep() BinaryStep { return nn.NewBinaryStep() }

// NewLeakyReLU creates a LeakyReLU with the given negative and positive
// slopes.
func NewLeakyReLU(negSlope, posSlope float64) LeakyReLU {
	return nn.NewLeakyReLU(negSlope, posSlope)
}

// NewSoftmax creates a Softmax activation.
func NewSoftmax() Softmax { return nn.NewSoftmax() }

// NewSoftplus creates a Softplus activation.
func NewSoftplus() Softplus { return nn.NewSoftplus() }

// NewLinear creates a Linear activation.
func NewLinear() Linear { return nn.NewLinear() }

// Cost is a scalar loss with its gradient with respect to the final
// activation.
type Cost = nn.Cost

// Cost variants.
type (
	// LeastSquares is the squared-error cost.
	LeastSquares = nn.LeastSquares
	// MeanAbsolute is the norm-based absolute cost.
	MeanAbsolute = nn.MeanAbsolute
)

// NewLeastSquares creates a LeastSquares cost.
func NewLeastSquares() LeastSquares { return nn.NewLeastSquares() }

// NewMeanAbsolute creates a MeanAbsolute cost.
func NewMeanAbsolute() MeanAbsolute { return nn.NewMeanAbsolute() }

// Sequential is a dense feedforward network.
type Sequential = nn.Sequential

// TrainConfig configures a training run.
type TrainConfig = nn.TrainConfig

// NewSequential creates a network from per-layer node counts (input layer
// included), with randomized weights and biases.
func NewSequential(nodeCounts ...int) (*Sequential, error) {
	return nn.NewSequential(nodeCounts...)
}
