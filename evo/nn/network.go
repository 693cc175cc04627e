package nn

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrInvalidShape is returned for shapes shorter than two entries or with
	// non-positive widths.
	ErrInvalidShape = errors.New("invalid network shape")
	// ErrInputSize is returned when an input vector does not match the
	// receiving layer's width.
	ErrInputSize = errors.New("input size mismatch")
	// ErrSnapshotMismatch is returned when a weight snapshot disagrees with
	// the shape it is restored into.
	ErrSnapshotMismatch = errors.New("weight snapshot does not match shape")
)

// Record is a node serialized as [bias, weights...].
type Record []float64

// LayerSnapshot holds one Record per node, in node order.
type LayerSnapshot []Record

// Snapshot holds one LayerSnapshot per layer, output layer first.
type Snapshot []LayerSnapshot

// Network is a chain of layers built from the output toward the input.
// Layers runs input-facing first.
type Network struct {
	Shape   []int
	Layers  []*Layer
	Fitness float64 // written and read by the evolution driver only

	activation ActivationFunc
}

// NewNetwork builds a randomly initialized network for shape.
// A nil activation selects Sigmoid.
func NewNetwork(shape []int, rng *rand.Rand, activation ActivationFunc) (*Network, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, err
	}
	activation = resolveActivation(activation)

	last := len(shape) - 1
	layers := make([]*Layer, len(shape))
	layers[last] = newLayer(shape[last], nil, activation, rng)
	for i := last - 1; i >= 0; i-- {
		layers[i] = newLayer(shape[i], layers[i+1], activation, rng)
	}

	return &Network{
		Shape:      append([]int(nil), shape...),
		Layers:     layers,
		activation: activation,
	}, nil
}

// NewNetworkFromSnapshot rebuilds a network for shape with the exact weights
// in snapshot. snapshot is ordered output layer first.
func NewNetworkFromSnapshot(shape []int, snapshot Snapshot, activation ActivationFunc) (*Network, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, err
	}
	if len(snapshot) != len(shape) {
		return nil, fmt.Errorf("%w: shape has %d layers, snapshot holds %d", ErrSnapshotMismatch, len(shape), len(snapshot))
	}
	activation = resolveActivation(activation)

	last := len(shape) - 1
	layers := make([]*Layer, len(shape))
	var next *Layer
	for i := last; i >= 0; i-- {
		l, err := restoreLayer(shape[i], next, activation, snapshot[last-i])
		if err != nil {
			return nil, fmt.Errorf("failed to restore layer %d: %w", i, err)
		}
		layers[i] = l
		next = l
	}

	return &Network{
		Shape:      append([]int(nil), shape...),
		Layers:     layers,
		activation: activation,
	}, nil
}

// ValidateShape checks that shape describes at least an input and an output
// layer, all with positive widths.
func ValidateShape(shape []int) error {
	if len(shape) < 2 {
		return fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidShape, len(shape))
	}
	for i, width := range shape {
		if width <= 0 {
			return fmt.Errorf("%w: layer %d has width %d", ErrInvalidShape, i, width)
		}
	}
	return nil
}

// Run evaluates the network. inputs must have Shape[0] values; the result has
// Shape[len(Shape)-1] values.
func (n *Network) Run(inputs []float64) ([]float64, error) {
	if len(inputs) != n.Shape[0] {
		return nil, fmt.Errorf("%w: network expects %d inputs, got %d", ErrInputSize, n.Shape[0], len(inputs))
	}
	values := inputs
	for i, l := range n.Layers {
		out, err := l.Forward(values)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		values = out
	}
	return values, nil
}

// Mutate mutates every layer in place, including the output layer whose
// weights are never read.
func (n *Network) Mutate(rng *rand.Rand, chance float64, r Range) {
	for _, l := range n.Layers {
		l.Mutate(rng, chance, r)
	}
}

// Snapshot returns the weights of every layer, output layer first.
func (n *Network) Snapshot() Snapshot {
	snap := make(Snapshot, 0, len(n.Layers))
	for i := len(n.Layers) - 1; i >= 0; i-- {
		snap = append(snap, n.Layers[i].Weights())
	}
	return snap
}

// Duplicate returns an independent copy with identical weights and zero
// fitness.
func (n *Network) Duplicate() *Network {
	dup, err := NewNetworkFromSnapshot(n.Shape, n.Snapshot(), n.activation)
	if err != nil {
		// A network's own snapshot always matches its shape.
		panic(fmt.Sprintf("duplicate of well-formed network failed: %v", err))
	}
	return dup
}

// WeightCount returns the number of weights that take part in evaluation.
func (n *Network) WeightCount() int {
	count := 0
	for i := 0; i < len(n.Shape)-1; i++ {
		count += n.Shape[i] * n.Shape[i+1]
	}
	return count
}

// String returns a string representation of the Network.
func (n *Network) String() string {
	return fmt.Sprintf("Network(Shape: %v, Fitness: %.4f)", n.Shape, n.Fitness)
}
