package tensor

import (
	"fmt"
	"math/rand"
)

// New creates a zero-filled rows×cols matrix.
func New(rows, cols int) *Matrix {
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// FromRows creates a matrix from a literal 2-D slice, one inner slice per
// row.
//
// Every row must have the same length; ragged input is rejected with
// ErrDimensionMismatch.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}
	cols := len(rows[0])
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, expected %d", ErrDimensionMismatch, i, len(r), cols)
		}
	}
	out := New(len(rows), cols)
	for i, r := range rows {
		copy(out.data[i*cols:(i+1)*cols], r)
	}
	return out, nil
}

// FromColumn creates an n×1 column vector from a slice.
func FromColumn(values []float64) *Matrix {
	out := New(len(values), 1)
	copy(out.data, values)
	return out
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	out := New(n, n)
	for i := 0; i < n; i++ {
		out.data[i*n+i] = 1.0
	}
	return out
}

// Rand creates a rows×cols matrix with independent uniform samples in [0, 1).
//
// Note: uses math/rand (not crypto/rand) - appropriate for ML/statistical
// purposes where reproducibility via seeding matters more than entropy.
func Rand(rows, cols int) *Matrix {
	out := New(rows, cols)
	for i := range out.data {
		out.data[i] = rand.Float64() //nolint:gosec // G404: ML uses math/rand intentionally
	}
	return out
}
