package evo

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/baldhumanity/evonet-go/evo/nn"
)

// fitnesses returns the fitness of every network, in population order.
func fitnesses(networks []*nn.Network) []float64 {
	values := make([]float64, len(networks))
	for i, net := range networks {
		values[i] = net.Fitness
	}
	return values
}

// fitnessSummary holds the population-level statistics of one evaluation.
type fitnessSummary struct {
	Mean, Stdev, Min, Max float64
}

// summarize computes mean, sample standard deviation, min and max of values.
// values must not be empty.
func summarize(values []float64) fitnessSummary {
	s := fitnessSummary{
		Mean: stat.Mean(values, nil),
		Min:  floats.Min(values),
		Max:  floats.Max(values),
	}
	// StdDev is undefined for fewer than two values
	if len(values) > 1 {
		s.Stdev = stat.StdDev(values, nil)
	}
	return s
}
