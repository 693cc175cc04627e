package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/baldhumanity/evonet-go/evo/nn"
)

// ErrPopulationSize is returned when reproduction does not restore the
// configured population size.
var ErrPopulationSize = errors.New("population size mismatch")

// Reproduction creates networks, either from scratch or by cloning and
// mutating survivors. Reproduction is asexual: every child has one parent.
type Reproduction struct {
	Config     *Config
	rng        *rand.Rand
	activation nn.ActivationFunc
}

// NewReproduction creates a new reproduction manager.
func NewReproduction(config *Config, rng *rand.Rand, activation nn.ActivationFunc) *Reproduction {
	return &Reproduction{
		Config:     config,
		rng:        rng,
		activation: activation,
	}
}

// CreateNewPopulation creates an initial population of independently
// randomized networks.
func (r *Reproduction) CreateNewPopulation() ([]*nn.Network, error) {
	popSize := r.Config.Evolution.PopSize
	networks := make([]*nn.Network, popSize)
	for i := range networks {
		net, err := nn.NewNetwork(r.Config.Network.Shape, r.rng, r.activation)
		if err != nil {
			return nil, fmt.Errorf("failed to create network %d: %w", i, err)
		}
		networks[i] = net
	}
	return networks, nil
}

// Reproduce keeps the lowest-fitness survivors and appends ClonesPerSurvivor
// mutated duplicates of each, in survivor order.
func (r *Reproduction) Reproduce(networks []*nn.Network) ([]*nn.Network, error) {
	popSize := r.Config.Evolution.PopSize
	survivors := Select(networks, r.Config.SurvivorCount())

	next := make([]*nn.Network, 0, popSize)
	next = append(next, survivors...)
	for _, parent := range survivors {
		for c := 0; c < ClonesPerSurvivor; c++ {
			child := parent.Duplicate()
			child.Mutate(r.rng, r.Config.Mutation.Chance, r.Config.Mutation.Range())
			next = append(next, child)
		}
	}

	if len(next) != popSize {
		return nil, fmt.Errorf("%w: reproduction produced %d networks, expected %d", ErrPopulationSize, len(next), popSize)
	}
	return next, nil
}
