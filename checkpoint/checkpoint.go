// Copyright 2025 The Strata Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package checkpoint persists trained networks as JSON snapshots.
//
// A snapshot records node counts, weights and biases. Activations and
// optimizer state are not serialized: a restored network needs
// SetActivations before it can predict, and resuming training starts with
// fresh optimizer accumulators.
//
// Example:
//
//	if err := checkpoint.Save("model.json", net); err != nil { ... }
//
//	restored, err := checkpoint.Restore("model.json")
//	_ = restored.SetActivations(nn.NewSigmoid(), nn.NewLinear())
package checkpoint

import (
	"github.com/strata-ml/strata/internal/nn"
	"github.com/strata-ml/strata/internal/serialization"
)

// Save writes the network's parameters to path.
func Save(path string, net *nn.Sequential) error {
	snap := serialization.NewSnapshot(net.NodeCounts(), net.Weights(), net.Biases(), net.LastLoss())
	return serialization.Save(path, snap)
}

// Restore rebuilds a network from a snapshot at path.
//
// The returned network carries the snapshot's weights and biases but no
// activations; assign those with SetActivations before calling Predict.
func Restore(path string) (*nn.Sequential, error) {
	snap, err := serialization.Load(path)
	if err != nil {
		return nil, err
	}
	weights, biases, err := snap.Tensors()
	if err != nil {
		return nil, err
	}
	net, err := nn.NewSequential(snap.NodeCounts...)
	if err != nil {
		return nil, err
	}
	if err := net.SetParameters(weights, biases); err != nil {
		return nil, err
	}
	return net, nil
}
