package checkpoint_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-ml/strata/checkpoint"
	"github.com/strata-ml/strata/nn"
	"github.com/strata-ml/strata/tensor"
)

// TestSaveRestore trains nothing; it checks that a restored network
// reproduces the saved network's predictions once activations are
// reassigned.
func TestSaveRestore(t *testing.T) {
	net, err := nn.NewSequential(2, 3, 1)
	require.NoError(t, err)
	require.NoError(t, net.SetActivations(nn.NewTanh(), nn.NewLinear()))

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, checkpoint.Save(path, net))

	restored, err := checkpoint.Restore(path)
	require.NoError(t, err)

	// Snapshots carry no activations.
	input := tensor.FromColumn([]float64{0.5, -0.25})
	_, err = restored.Predict(input)
	require.ErrorIs(t, err, nn.ErrConfiguration)

	require.NoError(t, restored.SetActivations(nn.NewTanh(), nn.NewLinear()))

	want, err := net.Predict(input)
	require.NoError(t, err)
	got, err := restored.Predict(input)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))
}

func TestRestore_MissingFile(t *testing.T) {
	_, err := checkpoint.Restore(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}
