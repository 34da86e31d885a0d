// Package serialization persists trained model parameters as JSON
// snapshots.
//
// A snapshot records the network's node counts plus its weight and bias
// tensors, along with light metadata (creation time, last training loss).
// It deliberately excludes optimizer state and the training set: a restored
// model predicts immediately, and resuming training starts with fresh
// optimizer accumulators.
package serialization

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/strata-ml/strata/internal/tensor"
)

// Snapshot is the serializable form of a trained network.
type Snapshot struct {
	NodeCounts []int         `json:"node_counts"`
	Weights    [][][]float64 `json:"weights"` // per layer, row-major rows
	Biases     [][]float64   `json:"biases"`  // per layer, one column each
	Loss       float64       `json:"loss,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// NewSnapshot captures node counts and parameter tensors into a Snapshot.
// The tensors are copied out; the snapshot does not alias them.
func NewSnapshot(nodeCounts []int, weights, biases []*tensor.Matrix, loss float64) *Snapshot {
	s := &Snapshot{
		NodeCounts: append([]int(nil), nodeCounts...),
		Weights:    make([][][]float64, len(weights)),
		Biases:     make([][]float64, len(biases)),
		Loss:       loss,
		CreatedAt:  time.Now().UTC(),
	}
	for i, w := range weights {
		rows := make([][]float64, w.Rows())
		for r := 0; r < w.Rows(); r++ {
			row := make([]float64, w.Cols())
			for c := 0; c < w.Cols(); c++ {
				row[c] = w.At(r, c)
			}
			rows[r] = row
		}
		s.Weights[i] = rows
	}
	for i, b := range biases {
		col := make([]float64, b.Rows())
		for r := 0; r < b.Rows(); r++ {
			col[r] = b.At(r, 0)
		}
		s.Biases[i] = col
	}
	return s
}

// Validate checks internal consistency: one weight and bias per computed
// layer, each with the shape the node counts imply.
func (s *Snapshot) Validate() error {
	if len(s.NodeCounts) < 2 {
		return fmt.Errorf("%w: %d node counts", ErrBadSnapshot, len(s.NodeCounts))
	}
	layerCount := len(s.NodeCounts) - 1
	if len(s.Weights) != layerCount || len(s.Biases) != layerCount {
		return fmt.Errorf("%w: %d weights and %d biases for %d computed layers",
			ErrMissingTensors, len(s.Weights), len(s.Biases), layerCount)
	}
	for i, rows := range s.Weights {
		if len(rows) != s.NodeCounts[i+1] {
			return fmt.Errorf("%w: weight %d has %d rows, want %d", ErrShapeMismatch, i, len(rows), s.NodeCounts[i+1])
		}
		for r, row := range rows {
			if len(row) != s.NodeCounts[i] {
				return fmt.Errorf("%w: weight %d row %d has %d entries, want %d",
					ErrShapeMismatch, i, r, len(row), s.NodeCounts[i])
			}
		}
	}
	for i, col := range s.Biases {
		if len(col) != s.NodeCounts[i+1] {
			return fmt.Errorf("%w: bias %d has %d entries, want %d", ErrShapeMismatch, i, len(col), s.NodeCounts[i+1])
		}
	}
	return nil
}

// Tensors reconstructs the weight and bias matrices recorded in the
// snapshot. Validate is applied first.
func (s *Snapshot) Tensors() (weights, biases []*tensor.Matrix, err error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	weights = make([]*tensor.Matrix, len(s.Weights))
	for i, rows := range s.Weights {
		w, err := tensor.FromRows(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: weight %d: %v", ErrBadSnapshot, i, err)
		}
		weights[i] = w
	}
	biases = make([]*tensor.Matrix, len(s.Biases))
	for i, col := range s.Biases {
		biases[i] = tensor.FromColumn(col)
	}
	return weights, biases, nil
}

// Save writes the snapshot to path as indented JSON.
func Save(path string, s *Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads and validates a snapshot from path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
