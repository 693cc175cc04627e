package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoid(t *testing.T) {
	assert.Equal(t, 0.5, Sigmoid(0))
	assert.InDelta(t, 0.7310585786, Sigmoid(1), 1e-9)
	assert.InDelta(t, 1-Sigmoid(3), Sigmoid(-3), 1e-12)
}

func TestGetActivation(t *testing.T) {
	fn, err := GetActivation("sigmoid")
	require.NoError(t, err)
	assert.Equal(t, Sigmoid(2), fn(2))

	_, err = GetActivation("softmax")
	assert.Error(t, err)
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode(nil)
	assert.Equal(t, DefaultBias, n.Bias)
	assert.Empty(t, n.Weights)
	require.NotNil(t, n.Activation)
	assert.Equal(t, 0.5, n.Activation(0))
}

func TestNodeOutputValues(t *testing.T) {
	identity := func(x float64) float64 { return x }
	n := NewNode(identity)
	n.SetWeights([]float64{1, -2, 0.5})

	// activation(3 + -1) = 2
	assert.Equal(t, []float64{2, -4, 1}, n.OutputValues(3))
}

func TestNodeSetWeights(t *testing.T) {
	n := NewNode(nil)
	w := []float64{0.1, 0.2}
	n.SetWeights(w)
	assert.Equal(t, DefaultBias, n.Bias, "bias must survive when not supplied")

	w[0] = 99
	assert.Equal(t, 0.1, n.Weights[0], "weights must be copied")

	n.SetWeights([]float64{0.3}, 0.25)
	assert.Equal(t, 0.25, n.Bias)
	assert.Equal(t, []float64{0.3}, n.Weights)
}

func TestNodeMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	t.Run("zero range leaves weights unchanged", func(t *testing.T) {
		n := NewNode(nil)
		n.SetWeights([]float64{0.1, -0.4, 0.9})
		n.Mutate(rng, 0, Range{})
		assert.Equal(t, []float64{0.1, -0.4, 0.9}, n.Weights)
	})

	t.Run("chance of one never mutates", func(t *testing.T) {
		n := NewNode(nil)
		n.SetWeights([]float64{0.1, -0.4, 0.9})
		n.Mutate(rng, 1, Range{Min: -1, Max: 1})
		assert.Equal(t, []float64{0.1, -0.4, 0.9}, n.Weights)
	})

	t.Run("chance of zero mutates within range and keeps bias", func(t *testing.T) {
		n := NewNode(nil)
		orig := []float64{0.1, -0.4, 0.9}
		n.SetWeights(orig)
		n.Mutate(rng, 0, Range{Min: 0.5, Max: 1})
		for i, w := range n.Weights {
			delta := w - orig[i]
			assert.GreaterOrEqual(t, delta, 0.5-1e-12)
			assert.LessOrEqual(t, delta, 1.0+1e-12)
		}
		assert.Equal(t, DefaultBias, n.Bias)
	})
}

func TestNodeRecord(t *testing.T) {
	n := NewNode(nil)
	n.SetWeights([]float64{0.5, 0.25}, 2)
	assert.Equal(t, Record{2, 0.5, 0.25}, n.Record())
}
