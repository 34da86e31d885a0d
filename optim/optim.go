// Copyright 2025 The Strata Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public API for strata's optimizer family.
//
// Stateful optimizers key their accumulators by an explicit slot index
// supplied by the caller, so state survives the wholesale parameter
// replacement each step produces. Call Reset before reusing an optimizer
// across independent training runs.
//
// Example:
//
//	opt := optim.NewAdam(optim.AdamConfig{LR: 0.001})
package optim

import (
	"github.com/strata-ml/strata/internal/optim"
)

// ErrEmptyBatch reports an Optimize call without gradients.
var ErrEmptyBatch = optim.ErrEmptyBatch

// Optimizer is the common update contract.
type Optimizer = optim.Optimizer

// Optimizer variants and their configurations.
type (
	// SGD is plain gradient descent.
	SGD = optim.SGD
	// SGDConfig configures SGD.
	SGDConfig = optim.SGDConfig
	// Momentum is gradient descent with velocity.
	Momentum = optim.Momentum
	// MomentumConfig configures Momentum.
	MomentumConfig = optim.MomentumConfig
	// AdaGrad adapts per-element learning rates by accumulated squared
	// gradients.
	AdaGrad = optim.AdaGrad
	// AdaGradConfig configures AdaGrad.
	AdaGradConfig = optim.AdaGradConfig
	// Adam is adaptive moment estimation.
	Adam = optim.Adam
	// AdamConfig configures Adam.
	AdamConfig = optim.AdamConfig
)

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD { return optim.NewSGD(config) }

// NewMomentum creates a new Momentum optimizer.
func NewMomentum(config MomentumConfig) *Momentum { return optim.NewMomentum(config) }

// NewAdaGrad creates a new AdaGrad optimizer.
func NewAdaGrad(config AdaGradConfig) *AdaGrad { return optim.NewAdaGrad(config) }

// NewAdam creates a new Adam optimizer.
func NewAdam(config AdamConfig) *Adam { return optim.NewAdam(config) }
