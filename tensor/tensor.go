// Copyright 2025 The Strata Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for strata's dense matrix engine.
//
// A Matrix is a dense 2-D float64 grid. Every operation follows value
// semantics: operands are never mutated and results are freshly allocated,
// so matrices can be shared freely across batch members.
//
// Example:
//
//	a, _ := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
//	b := tensor.Identity(2)
//	c, err := tensor.MatMul(a, b) // equals a
package tensor

import (
	"github.com/strata-ml/strata/internal/tensor"
)

// Matrix is a dense 2-D float64 matrix with value-semantics operations.
type Matrix = tensor.Matrix

// Sentinel errors.
var (
	// ErrDimensionMismatch reports shape-incompatible operands.
	ErrDimensionMismatch = tensor.ErrDimensionMismatch

	// ErrShape reports an operation requested on an unsupported shape
	// class, such as a norm of a non-vector.
	ErrShape = tensor.ErrShape
)

// Creation functions

// New creates a zero-filled rows×cols matrix.
func New(rows, cols int) *Matrix {
	return tensor.New(rows, cols)
}

// FromRows creates a matrix from a literal 2-D slice; ragged input is
// rejected with ErrDimensionMismatch.
func FromRows(rows [][]float64) (*Matrix, error) {
	return tensor.FromRows(rows)
}

// FromColumn creates an n×1 column vector from a slice.
func FromColumn(values []float64) *Matrix {
	return tensor.FromColumn(values)
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	return tensor.Identity(n)
}

// Rand creates a rows×cols matrix of uniform samples in [0, 1).
func Rand(rows, cols int) *Matrix {
	return tensor.Rand(rows, cols)
}

// Operations

// MatMul computes the matrix product a·b.
func MatMul(a, b *Matrix) (*Matrix, error) {
	return tensor.MatMul(a, b)
}

// Scale multiplies every element of a by k.
func Scale(k float64, a *Matrix) *Matrix {
	return tensor.Scale(k, a)
}

// Add computes the elementwise sum of two same-shape matrices.
func Add(a, b *Matrix) (*Matrix, error) {
	return tensor.Add(a, b)
}

// Sub computes the elementwise difference of two same-shape matrices.
func Sub(a, b *Matrix) (*Matrix, error) {
	return tensor.Sub(a, b)
}

// Hadamard computes the elementwise product of two same-shape matrices.
func Hadamard(a, b *Matrix) (*Matrix, error) {
	return tensor.Hadamard(a, b)
}

// HadamardDiv computes the elementwise quotient of two same-shape matrices.
func HadamardDiv(a, b *Matrix) (*Matrix, error) {
	return tensor.HadamardDiv(a, b)
}
