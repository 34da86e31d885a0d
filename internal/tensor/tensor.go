// Package tensor implements the dense matrix engine used throughout strata.
//
// A Matrix is a dense 2-D grid of float64 values stored in row-major order.
// All operations follow value semantics: no exported operation mutates its
// operands, every result is freshly allocated. This keeps batch-shared
// operands safe to reuse across training examples without aliasing hazards.
package tensor

import (
	"fmt"
	"math"
	"strings"

	"github.com/strata-ml/strata/internal/parallel"
)

// matmulParallel governs row fan-out for MatMul. Output rows are
// independent, so workers never write overlapping slices.
var matmulParallel = parallel.DefaultConfig()

// Matrix is a dense 2-D float64 matrix with row-major flat storage.
//
// The zero value is an empty 0×0 matrix. Use New, FromRows, Identity or
// Rand to construct matrices with content.
type Matrix struct {
	rows, cols int
	data       []float64
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set assigns the element at row i, column j.
//
// Set is intended for populating a matrix before it is shared; once a
// matrix participates in training it should be treated as immutable.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	out := New(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Equal reports whether two matrices have identical shape and elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// MatMul computes the standard matrix product a·b.
//
// The column count of a must equal the row count of b, otherwise
// ErrDimensionMismatch is returned. The result has shape
// (a.Rows × b.Cols).
func MatMul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("%w: product of %dx%d and %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, b.cols)
	parallel.For(a.rows, matmulParallel, func(i int) {
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.cols; j++ {
				out.data[i*b.cols+j] += aik * b.data[k*b.cols+j]
			}
		}
	})
	return out, nil
}

// Scale multiplies every element of a by the scalar k.
func Scale(k float64, a *Matrix) *Matrix {
	out := New(a.rows, a.cols)
	for i, v := range a.data {
		out.data[i] = k * v
	}
	return out
}

// Add computes the elementwise sum a+b.
//
// Returns ErrDimensionMismatch unless both operands share a shape.
func Add(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, fmt.Errorf("%w: sum of %dx%d and %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] + b.data[i]
	}
	return out, nil
}

// Sub computes the elementwise difference a-b.
//
// Returns ErrDimensionMismatch unless both operands share a shape.
func Sub(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, fmt.Errorf("%w: difference of %dx%d and %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] - b.data[i]
	}
	return out, nil
}

// Hadamard computes the elementwise (Hadamard) product a⊙b.
//
// Unlike the ordinary matrix product the Hadamard product is commutative.
// Returns ErrDimensionMismatch unless both operands share a shape.
func Hadamard(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, fmt.Errorf("%w: hadamard product of %dx%d and %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] * b.data[i]
	}
	return out, nil
}

// HadamardDiv computes the elementwise quotient a⊘b.
//
// Division follows IEEE-754 semantics; a zero divisor yields ±Inf or NaN.
// Returns ErrDimensionMismatch unless both operands share a shape.
func HadamardDiv(a, b *Matrix) (*Matrix, error) {
	if a.rows != b.rows || a.cols != b.cols {
		return nil, fmt.Errorf("%w: hadamard quotient of %dx%d and %dx%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}
	out := New(a.rows, a.cols)
	for i := range a.data {
		out.data[i] = a.data[i] / b.data[i]
	}
	return out, nil
}

// Transpose returns the transpose of the matrix.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Apply returns a new matrix with f applied to every element.
func (m *Matrix) Apply(f func(float64) float64) *Matrix {
	out := New(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

// Norm computes the Euclidean norm of a column vector.
//
// Returns ErrShape if the matrix has more than one column.
func (m *Matrix) Norm() (float64, error) {
	if m.cols != 1 {
		return 0, fmt.Errorf("%w: norm requires a column vector, got %dx%d", ErrShape, m.rows, m.cols)
	}
	sum := 0.0
	for _, v := range m.data {
		sum += v * v
	}
	return math.Sqrt(sum), nil
}

// String renders the matrix one row per line, for debugging and plain-text
// persistence.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.cols+j])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
