package nn

import (
	"fmt"
	"math/rand"
)

// DefaultBias is the bias given to every freshly constructed node.
const DefaultBias = -1.0

// Range is a closed interval [Min, Max] used for uniform perturbations.
type Range struct {
	Min, Max float64
}

// Sample draws a uniform value from the range.
func (r Range) Sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Node is a single neuron. Weights holds one outgoing weight per node of the
// next layer toward the output.
type Node struct {
	Bias       float64
	Weights    []float64
	Activation ActivationFunc
}

// NewNode creates a node with the default bias and no weights.
func NewNode(activation ActivationFunc) *Node {
	return &Node{
		Bias:       DefaultBias,
		Activation: resolveActivation(activation),
	}
}

// String returns a string representation of the Node.
func (n *Node) String() string {
	return fmt.Sprintf("Node(Bias: %.3f, Weights: %d)", n.Bias, len(n.Weights))
}

// OutputValues activates the node on inputSum and returns its weighted
// contribution to every downstream node.
func (n *Node) OutputValues(inputSum float64) []float64 {
	activated := n.Activation(inputSum + n.Bias)
	out := make([]float64, len(n.Weights))
	for i, w := range n.Weights {
		out[i] = activated * w
	}
	return out
}

// SetWeights replaces the weight vector. The bias is replaced only when one is
// supplied.
func (n *Node) SetWeights(weights []float64, bias ...float64) {
	n.Weights = append([]float64(nil), weights...)
	if len(bias) > 0 {
		n.Bias = bias[0]
	}
}

// Mutate perturbs each weight by a uniform draw from r when an independent
// uniform draw exceeds chance. A larger chance therefore mutates fewer weights.
// The bias is left untouched.
func (n *Node) Mutate(rng *rand.Rand, chance float64, r Range) {
	for i := range n.Weights {
		if rng.Float64() > chance {
			n.Weights[i] += r.Sample(rng)
		}
	}
}

// Record serializes the node as [bias, weights...].
func (n *Node) Record() Record {
	rec := make(Record, 0, len(n.Weights)+1)
	rec = append(rec, n.Bias)
	return append(rec, n.Weights...)
}
