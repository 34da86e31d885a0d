package tensor

import "errors"

// Sentinel errors returned by matrix operations.
var (
	// ErrDimensionMismatch is returned when the shapes of two operands are
	// incompatible for the requested operation (matrix product inner
	// dimensions, elementwise operand shapes, ragged literal rows).
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrShape is returned when an operation defined only for a particular
	// shape class is requested on something else (e.g. the Euclidean norm
	// of a matrix that is not a column vector).
	ErrShape = errors.New("shape error")
)
