// Copyright 2025 The Strata Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-ml/strata/tensor"
)

// TestPublicAPI verifies the facade exposes the full engine surface.
func TestPublicAPI(t *testing.T) {
	a, err := tensor.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	id := tensor.Identity(2)
	product, err := tensor.MatMul(id, a)
	require.NoError(t, err)
	assert.True(t, product.Equal(a))

	sum, err := tensor.Add(a, tensor.New(2, 2))
	require.NoError(t, err)
	assert.True(t, sum.Equal(a))

	diff, err := tensor.Sub(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0.0, diff.At(1, 1))

	hp, err := tensor.Hadamard(a, a)
	require.NoError(t, err)
	assert.Equal(t, 16.0, hp.At(1, 1))

	hq, err := tensor.HadamardDiv(a, a)
	require.NoError(t, err)
	assert.Equal(t, 1.0, hq.At(0, 1))

	assert.Equal(t, 8.0, tensor.Scale(2, a).At(1, 1))

	v := tensor.FromColumn([]float64{3, 4})
	norm, err := v.Norm()
	require.NoError(t, err)
	assert.InDelta(t, 5.0, norm, 1e-12)
}

func TestPublicErrors(t *testing.T) {
	_, err := tensor.MatMul(tensor.New(2, 3), tensor.New(2, 3))
	require.ErrorIs(t, err, tensor.ErrDimensionMismatch)

	_, err = tensor.New(2, 2).Norm()
	require.ErrorIs(t, err, tensor.ErrShape)
}
