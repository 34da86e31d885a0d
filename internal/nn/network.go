// Package nn implements the multilayer perceptron at the heart of strata:
// activation functions, cost functions, and the Sequential model that owns
// per-layer parameters and drives forward/backward propagation.
package nn

import (
	"fmt"
	"math/rand"

	"github.com/strata-ml/strata/internal/optim"
	"github.com/strata-ml/strata/internal/tensor"
)

// Sequential is a dense feedforward network.
//
// A network with L declared layers (1 input layer + L−1 computed layers)
// owns L−1 weight matrices and L−1 bias vectors. Weight i has shape
// (nodeCounts[i+1] × nodeCounts[i]) and bias i has shape
// (nodeCounts[i+1] × 1); shapes stay fixed for the network's lifetime even
// though the tensors themselves are replaced wholesale every optimizer
// step. The network exclusively owns its parameter tensors; accessors hand
// out deep copies.
type Sequential struct {
	nodeCounts  []int
	weights     []*tensor.Matrix
	biases      []*tensor.Matrix
	activations []Activation

	// Training sample store: index-aligned column vectors, populated by
	// LoadSamples and reordered (only) by the per-epoch shuffle.
	inputs  []*tensor.Matrix
	targets []*tensor.Matrix

	lastLoss float64
}

// NewSequential creates a network from per-layer node counts, one count per
// layer including the input layer. Weights and biases are filled with
// uniform random values in [0, 1).
//
// Example:
//
//	net, err := nn.NewSequential(1, 64, 32, 1)
//
// creates an MLP with one input, two hidden layers and one output.
func NewSequential(nodeCounts ...int) (*Sequential, error) {
	if len(nodeCounts) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layers, got %d", ErrConfiguration, len(nodeCounts))
	}
	for i, n := range nodeCounts {
		if n < 1 {
			return nil, fmt.Errorf("%w: layer %d has node count %d", ErrConfiguration, i, n)
		}
	}

	s := &Sequential{
		nodeCounts: append([]int(nil), nodeCounts...),
		weights:    make([]*tensor.Matrix, len(nodeCounts)-1),
		biases:     make([]*tensor.Matrix, len(nodeCounts)-1),
	}
	// The input layer has neither a weight matrix nor a bias vector, hence
	// layers-1 of each.
	for i := range s.weights {
		s.weights[i] = tensor.Rand(nodeCounts[i+1], nodeCounts[i])
		s.biases[i] = tensor.Rand(nodeCounts[i+1], 1)
	}
	return s, nil
}

// Layers returns the declared layer count, input layer included.
func (s *Sequential) Layers() int { return len(s.nodeCounts) }

// NodeCounts returns a copy of the per-layer node counts.
func (s *Sequential) NodeCounts() []int {
	return append([]int(nil), s.nodeCounts...)
}

// SetActivations assigns one activation per computed layer, in order.
//
// The count must equal the number of non-input layers; otherwise the
// assignment is rejected with ErrConfiguration and the network is left
// unchanged.
func (s *Sequential) SetActivations(activations ...Activation) error {
	if len(activations) != len(s.weights) {
		return fmt.Errorf("%w: expected %d activations, received %d", ErrConfiguration, len(s.weights), len(activations))
	}
	s.activations = append([]Activation(nil), activations...)
	return nil
}

// LoadSamples replaces the training sample store with index-aligned input
// and target column vectors.
//
// Either the whole set is accepted or none of it: any length mismatch or
// wrongly shaped vector rejects the call without touching the current
// store.
func (s *Sequential) LoadSamples(inputs, targets []*tensor.Matrix) error {
	if len(inputs) != len(targets) {
		return fmt.Errorf("%w: %d inputs but %d targets", ErrConfiguration, len(inputs), len(targets))
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: empty training set", ErrConfiguration)
	}
	inWidth := s.nodeCounts[0]
	outWidth := s.nodeCounts[len(s.nodeCounts)-1]
	for i, in := range inputs {
		if in.Rows() != inWidth || in.Cols() != 1 {
			return fmt.Errorf("%w: input %d is %dx%d, want %dx1", tensor.ErrDimensionMismatch, i, in.Rows(), in.Cols(), inWidth)
		}
	}
	for i, tg := range targets {
		if tg.Rows() != outWidth || tg.Cols() != 1 {
			return fmt.Errorf("%w: target %d is %dx%d, want %dx1", tensor.ErrDimensionMismatch, i, tg.Rows(), tg.Cols(), outWidth)
		}
	}
	s.inputs = append([]*tensor.Matrix(nil), inputs...)
	s.targets = append([]*tensor.Matrix(nil), targets...)
	return nil
}

// SampleCount returns the number of loaded training samples.
func (s *Sequential) SampleCount() int { return len(s.inputs) }

// TrainConfig configures a training run.
type TrainConfig struct {
	Epochs    int             // Number of epochs (Train only; must be >= 1)
	BatchSize int             // Mini-batch size drawn each epoch
	Optimizer optim.Optimizer // Update rule; stateful optimizers carry slots across epochs
	Cost      Cost            // Loss driving backpropagation

	// Seed seeds the shuffle RNG for reproducible runs; 0 draws a random
	// seed.
	Seed int64

	// ResetStateEachEpoch clears optimizer memory at the end of every
	// epoch, making accumulators epoch-scoped. Leave false to let momentum
	// and moment estimates carry across epochs.
	ResetStateEachEpoch bool

	// OnEpoch, if set, receives the 1-based epoch number and the epoch's
	// average loss. This is the reporting hook for external loggers.
	OnEpoch func(epoch int, loss float64)
}

func (s *Sequential) checkTrainable(cfg TrainConfig) error {
	if s.activations == nil {
		return fmt.Errorf("%w: activations not set", ErrConfiguration)
	}
	if cfg.Optimizer == nil {
		return fmt.Errorf("%w: nil optimizer", ErrConfiguration)
	}
	if cfg.Cost == nil {
		return fmt.Errorf("%w: nil cost", ErrConfiguration)
	}
	if cfg.BatchSize < 1 {
		return fmt.Errorf("%w: batch size %d", ErrConfiguration, cfg.BatchSize)
	}
	if len(s.inputs) == 0 {
		return fmt.Errorf("%w: no training samples loaded", ErrConfiguration)
	}
	if len(s.inputs) < cfg.BatchSize {
		return fmt.Errorf("%w: %d samples for batch size %d", ErrConfiguration, len(s.inputs), cfg.BatchSize)
	}
	return nil
}

func (s *Sequential) newShuffleRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = rand.Int63() //nolint:gosec // G404: ML uses math/rand intentionally
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // G404: seeded for reproducibility
}

// Train runs cfg.Epochs epochs of mini-batch gradient descent.
//
// Each epoch shuffles the sample store with one shared permutation, draws
// the first BatchSize samples as the mini-batch, runs forward/backward
// propagation per example, and applies one optimizer step per weight and
// bias tensor. The per-epoch average loss is reported through cfg.OnEpoch
// and retained for LastLoss.
func (s *Sequential) Train(cfg TrainConfig) error {
	if cfg.Epochs < 1 {
		return fmt.Errorf("%w: cannot train for %d epochs", ErrConfiguration, cfg.Epochs)
	}
	if err := s.checkTrainable(cfg); err != nil {
		return err
	}
	rng := s.newShuffleRNG(cfg.Seed)
	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		loss, err := s.learn(rng, cfg)
		if err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
		s.lastLoss = loss
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(epoch, loss)
		}
	}
	return nil
}

// TrainUntil runs epochs until the average loss drops to cutoff or below.
// cfg.Epochs is ignored.
//
// There is no iteration cap: a cutoff the model cannot reach trains
// forever.
func (s *Sequential) TrainUntil(cutoff float64, cfg TrainConfig) error {
	if err := s.checkTrainable(cfg); err != nil {
		return err
	}
	rng := s.newShuffleRNG(cfg.Seed)
	for epoch := 1; ; epoch++ {
		loss, err := s.learn(rng, cfg)
		if err != nil {
			return fmt.Errorf("epoch %d: %w", epoch, err)
		}
		s.lastLoss = loss
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(epoch, loss)
		}
		if loss <= cutoff {
			return nil
		}
	}
}

// learn runs one epoch: batch draw, per-example forward/backward passes,
// then one optimizer sweep over every parameter tensor. Returns the
// average loss over the batch.
func (s *Sequential) learn(rng *rand.Rand, cfg TrainConfig) (float64, error) {
	s.shuffle(rng)

	layerCount := len(s.weights)
	weightGrads := make([][]*tensor.Matrix, layerCount)
	biasGrads := make([][]*tensor.Matrix, layerCount)
	for i := range weightGrads {
		weightGrads[i] = make([]*tensor.Matrix, cfg.BatchSize)
		biasGrads[i] = make([]*tensor.Matrix, cfg.BatchSize)
	}

	lossSum := 0.0
	for j := 0; j < cfg.BatchSize; j++ {
		loss, wg, bg, err := s.backprop(s.inputs[j], s.targets[j], cfg.Cost)
		if err != nil {
			return 0, err
		}
		lossSum += loss
		for i := 0; i < layerCount; i++ {
			weightGrads[i][j] = wg[i]
			biasGrads[i][j] = bg[i]
		}
	}

	// One optimizer call per parameter tensor. Weight tensors use even
	// slots, bias tensors odd, so stateful optimizers never mix the two.
	for i := 0; i < layerCount; i++ {
		updated, err := cfg.Optimizer.Optimize(2*i, s.weights[i], weightGrads[i])
		if err != nil {
			return 0, err
		}
		s.weights[i] = updated

		updated, err = cfg.Optimizer.Optimize(2*i+1, s.biases[i], biasGrads[i])
		if err != nil {
			return 0, err
		}
		s.biases[i] = updated
	}

	if cfg.ResetStateEachEpoch {
		cfg.Optimizer.Reset()
	}
	return lossSum / float64(cfg.BatchSize), nil
}

// shuffle reorders inputs and targets with one shared permutation so the
// two stay index-aligned.
func (s *Sequential) shuffle(rng *rand.Rand) {
	rng.Shuffle(len(s.inputs), func(i, j int) {
		s.inputs[i], s.inputs[j] = s.inputs[j], s.inputs[i]
		s.targets[i], s.targets[j] = s.targets[j], s.targets[i]
	})
}

// forward runs the forward pass, returning per-layer pre-activations and
// activations. preActs[0] is nil; outputs[0] is the input, which passes
// through the input layer unchanged.
func (s *Sequential) forward(input *tensor.Matrix) (preActs, outputs []*tensor.Matrix, err error) {
	layers := len(s.nodeCounts)
	preActs = make([]*tensor.Matrix, layers)
	outputs = make([]*tensor.Matrix, layers)
	outputs[0] = input

	for i := 1; i < layers; i++ {
		product, err := tensor.MatMul(s.weights[i-1], outputs[i-1])
		if err != nil {
			return nil, nil, err
		}
		z, err := tensor.Add(product, s.biases[i-1])
		if err != nil {
			return nil, nil, err
		}
		preActs[i] = z
		outputs[i] = s.activations[i-1].Activate(z)
	}
	return preActs, outputs, nil
}

// backprop runs one example through the network and returns its loss plus
// per-layer weight and bias gradients.
//
// The error term of the last layer is the cost gradient Hadamard-multiplied
// with the layer's activation derivative; earlier error terms chain through
// transposed weights. Weight gradient i is the outer product of error term
// i with the previous layer's output; the bias gradient is the error term
// itself.
func (s *Sequential) backprop(input, target *tensor.Matrix, cost Cost) (float64, []*tensor.Matrix, []*tensor.Matrix, error) {
	preActs, outputs, err := s.forward(input)
	if err != nil {
		return 0, nil, nil, err
	}
	layers := len(s.nodeCounts)
	final := outputs[layers-1]

	loss, err := cost.Loss(final, target)
	if err != nil {
		return 0, nil, nil, err
	}

	deltas := make([]*tensor.Matrix, layers-1)

	costGrad, err := cost.Gradient(final, target)
	if err != nil {
		return 0, nil, nil, err
	}
	deltas[layers-2], err = tensor.Hadamard(costGrad, s.activations[layers-2].Derivative(preActs[layers-1]))
	if err != nil {
		return 0, nil, nil, err
	}

	// Error terms index computed layers, so weights[i+1] pairs with
	// deltas[i+1] and preActs[i+1] pairs with deltas[i].
	for i := layers - 3; i >= 0; i-- {
		product, err := tensor.MatMul(s.weights[i+1].Transpose(), deltas[i+1])
		if err != nil {
			return 0, nil, nil, err
		}
		deltas[i], err = tensor.Hadamard(product, s.activations[i].Derivative(preActs[i+1]))
		if err != nil {
			return 0, nil, nil, err
		}
	}

	weightGrads := make([]*tensor.Matrix, layers-1)
	for i := 0; i < layers-1; i++ {
		weightGrads[i], err = tensor.MatMul(deltas[i], outputs[i].Transpose())
		if err != nil {
			return 0, nil, nil, err
		}
	}
	return loss, weightGrads, deltas, nil
}

// Predict runs the forward pass alone and returns the final layer's
// output. It is a pure function of the input and current parameters.
//
// Requires activations to be set and an input column vector matching the
// first layer's width.
func (s *Sequential) Predict(input *tensor.Matrix) (*tensor.Matrix, error) {
	if s.activations == nil {
		return nil, fmt.Errorf("%w: activations not set", ErrConfiguration)
	}
	if input.Rows() != s.nodeCounts[0] || input.Cols() != 1 {
		return nil, fmt.Errorf("%w: input is %dx%d, first layer expects %dx1",
			tensor.ErrDimensionMismatch, input.Rows(), input.Cols(), s.nodeCounts[0])
	}
	_, outputs, err := s.forward(input)
	if err != nil {
		return nil, err
	}
	return outputs[len(outputs)-1], nil
}

// LastLoss returns the average loss of the most recent epoch.
func (s *Sequential) LastLoss() float64 { return s.lastLoss }

// Weights returns deep copies of the per-layer weight matrices, for
// external persistence.
func (s *Sequential) Weights() []*tensor.Matrix {
	out := make([]*tensor.Matrix, len(s.weights))
	for i, w := range s.weights {
		out[i] = w.Clone()
	}
	return out
}

// Biases returns deep copies of the per-layer bias vectors, for external
// persistence.
func (s *Sequential) Biases() []*tensor.Matrix {
	out := make([]*tensor.Matrix, len(s.biases))
	for i, b := range s.biases {
		out[i] = b.Clone()
	}
	return out
}

// SetParameters replaces all weights and biases at once, deep-copying the
// arguments. Every tensor must match the shape implied by the network's
// node counts; otherwise nothing is replaced.
//
// Callers restoring parameters into a network trained with a stateful
// optimizer should Reset that optimizer: its accumulators describe the
// previous run.
func (s *Sequential) SetParameters(weights, biases []*tensor.Matrix) error {
	if len(weights) != len(s.weights) || len(biases) != len(s.biases) {
		return fmt.Errorf("%w: expected %d weight and %d bias tensors", ErrConfiguration, len(s.weights), len(s.biases))
	}
	for i, w := range weights {
		if w.Rows() != s.nodeCounts[i+1] || w.Cols() != s.nodeCounts[i] {
			return fmt.Errorf("%w: weight %d is %dx%d, want %dx%d",
				tensor.ErrDimensionMismatch, i, w.Rows(), w.Cols(), s.nodeCounts[i+1], s.nodeCounts[i])
		}
	}
	for i, b := range biases {
		if b.Rows() != s.nodeCounts[i+1] || b.Cols() != 1 {
			return fmt.Errorf("%w: bias %d is %dx%d, want %dx1",
				tensor.ErrDimensionMismatch, i, b.Rows(), b.Cols(), s.nodeCounts[i+1])
		}
	}
	for i, w := range weights {
		s.weights[i] = w.Clone()
	}
	for i, b := range biases {
		s.biases[i] = b.Clone()
	}
	return nil
}
