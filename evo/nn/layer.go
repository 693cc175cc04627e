package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Layer is a fixed-size group of nodes feeding the layer one step closer to
// the output. The output layer performs no computation; its nodes exist only
// so every layer has the same snapshot form.
type Layer struct {
	Nodes    []*Node
	IsOutput bool
	next     *Layer // non-owning, nil for the output layer
}

// newLayer creates a layer of count nodes with weights drawn uniformly from
// [-1, 1], one per node of next. Output-layer nodes get a single placeholder
// weight.
func newLayer(count int, next *Layer, activation ActivationFunc, rng *rand.Rand) *Layer {
	l := &Layer{
		Nodes:    make([]*Node, count),
		IsOutput: next == nil,
		next:     next,
	}
	width := l.fanOut()
	for i := range l.Nodes {
		node := NewNode(activation)
		if l.IsOutput {
			node.Weights = []float64{1}
		} else {
			node.Weights = make([]float64, width)
			for j := range node.Weights {
				node.Weights[j] = rng.Float64()*2 - 1
			}
		}
		l.Nodes[i] = node
	}
	return l
}

// restoreLayer creates a layer of count nodes from [bias, weights...] records.
func restoreLayer(count int, next *Layer, activation ActivationFunc, records LayerSnapshot) (*Layer, error) {
	if len(records) != count {
		return nil, fmt.Errorf("%w: layer has %d nodes but snapshot holds %d records", ErrSnapshotMismatch, count, len(records))
	}
	l := &Layer{
		Nodes:    make([]*Node, count),
		IsOutput: next == nil,
		next:     next,
	}
	width := l.fanOut()
	for i, rec := range records {
		if len(rec) != width+1 {
			return nil, fmt.Errorf("%w: node %d record has %d weights, expected %d", ErrSnapshotMismatch, i, len(rec)-1, width)
		}
		node := NewNode(activation)
		node.SetWeights(rec[1:], rec[0])
		l.Nodes[i] = node
	}
	return l, nil
}

// fanOut is the number of weights each node carries.
func (l *Layer) fanOut() int {
	if l.next == nil {
		return 1
	}
	return len(l.next.Nodes)
}

// Forward computes the fan-in accumulation this layer delivers to the next
// layer. The output layer returns a copy of its inputs.
func (l *Layer) Forward(inputs []float64) ([]float64, error) {
	if l.IsOutput {
		return append([]float64(nil), inputs...), nil
	}
	if len(inputs) != len(l.Nodes) {
		return nil, fmt.Errorf("%w: layer has %d nodes, got %d inputs", ErrInputSize, len(l.Nodes), len(inputs))
	}
	acc := make([]float64, len(l.next.Nodes))
	for i, node := range l.Nodes {
		floats.Add(acc, node.OutputValues(inputs[i]))
	}
	return acc, nil
}

// Mutate mutates every node in the layer.
func (l *Layer) Mutate(rng *rand.Rand, chance float64, r Range) {
	for _, node := range l.Nodes {
		node.Mutate(rng, chance, r)
	}
}

// Weights returns one [bias, weights...] record per node, in node order.
func (l *Layer) Weights() LayerSnapshot {
	records := make(LayerSnapshot, len(l.Nodes))
	for i, node := range l.Nodes {
		records[i] = node.Record()
	}
	return records
}
