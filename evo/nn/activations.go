package nn

import (
	"fmt"
	"math"
)

// ActivationFunc is a pure scalar transform applied to a node's summed input.
type ActivationFunc func(x float64) float64

// ActivationFunctions maps configuration names to activation functions.
var ActivationFunctions = map[string]ActivationFunc{
	"sigmoid": Sigmoid,
}

// GetActivation retrieves an activation function by name.
func GetActivation(name string) (ActivationFunc, error) {
	if fn, ok := ActivationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown activation function: %s", name)
}

// Sigmoid is the logistic function 1 / (1 + e^-x).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// resolveActivation returns fn, or Sigmoid when fn is nil.
func resolveActivation(fn ActivationFunc) ActivationFunc {
	if fn == nil {
		return Sigmoid
	}
	return fn
}
