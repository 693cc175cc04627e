package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLayerWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	out := newLayer(3, nil, nil, rng)
	require.True(t, out.IsOutput)
	for _, node := range out.Nodes {
		assert.Equal(t, []float64{1}, node.Weights)
	}

	hidden := newLayer(5, out, nil, rng)
	require.False(t, hidden.IsOutput)
	require.Len(t, hidden.Nodes, 5)
	for _, node := range hidden.Nodes {
		require.Len(t, node.Weights, 3)
		for _, w := range node.Weights {
			assert.GreaterOrEqual(t, w, -1.0)
			assert.LessOrEqual(t, w, 1.0)
		}
		assert.Equal(t, DefaultBias, node.Bias)
	}
}

func TestRestoreLayerRejectsMismatch(t *testing.T) {
	out, err := restoreLayer(2, nil, nil, LayerSnapshot{{0, 1}, {0, 1}})
	require.NoError(t, err)

	_, err = restoreLayer(1, out, nil, LayerSnapshot{{0, 1}})
	assert.ErrorIs(t, err, ErrSnapshotMismatch, "record shorter than next layer")

	_, err = restoreLayer(1, out, nil, LayerSnapshot{{0, 1, 2, 3}})
	assert.ErrorIs(t, err, ErrSnapshotMismatch, "record longer than next layer")

	_, err = restoreLayer(2, out, nil, LayerSnapshot{{0, 1, 2}})
	assert.ErrorIs(t, err, ErrSnapshotMismatch, "too few records")
}

func TestLayerForwardFanIn(t *testing.T) {
	identity := func(x float64) float64 { return x }
	out, err := restoreLayer(2, nil, identity, LayerSnapshot{{0, 1}, {0, 1}})
	require.NoError(t, err)
	in, err := restoreLayer(2, out, identity, LayerSnapshot{
		{0, 1, 2},
		{1, 3, 4},
	})
	require.NoError(t, err)

	// node0 activates to 1, node1 to 2+1=3
	acc, err := in.Forward([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1*1 + 3*3, 1*2 + 3*4}, acc)

	_, err = in.Forward([]float64{1})
	assert.ErrorIs(t, err, ErrInputSize)
}

func TestOutputLayerPassThrough(t *testing.T) {
	out := newLayer(2, nil, nil, rand.New(rand.NewSource(1)))
	in := []float64{0.3, 0.7}
	got, err := out.Forward(in)
	require.NoError(t, err)
	assert.Equal(t, in, got)

	got[0] = 5
	assert.Equal(t, 0.3, in[0], "output layer must not alias its input")
}

func TestLayerWeightsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	out := newLayer(2, nil, nil, rng)
	hidden := newLayer(3, out, nil, rng)

	restored, err := restoreLayer(3, out, nil, hidden.Weights())
	require.NoError(t, err)
	assert.Equal(t, hidden.Weights(), restored.Weights())
}
