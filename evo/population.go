package evo

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/baldhumanity/evonet-go/evo/nn"
)

// FitnessFunc scores a network. It must not modify the network and lower
// values are better. A returned error aborts the current generation.
type FitnessFunc func(net *nn.Network) (float64, error)

// Status reports how a run ended.
type Status int

const (
	// NotConverged means the generation cap was reached first.
	NotConverged Status = iota
	// Converged means mean fitness fell below the convergence threshold.
	Converged
)

func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case NotConverged:
		return "not converged"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of Population.Run.
type Result struct {
	Status      Status
	Generations int // evaluation rounds performed by this run
	Stats       GenerationStats
	Best        *nn.Network
	Population  []*nn.Network
}

// Population holds the state of the evolutionary process.
type Population struct {
	Config       *Config
	Networks     []*nn.Network // current generation
	Reproduction *Reproduction
	Generation   int         // evaluation rounds performed so far
	Best         *nn.Network // lowest-fitness network seen so far, as a duplicate
	Logger       *slog.Logger
	Reporter     *Reporter // optional, nil disables CSV output
}

// NewPopulation validates config and creates the first generation.
func NewPopulation(config *Config) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	activation, err := nn.GetActivation(config.Network.Activation)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve activation: %w", err)
	}

	seed := config.Evolution.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	reproduction := NewReproduction(config, rng, activation)
	networks, err := reproduction.CreateNewPopulation()
	if err != nil {
		return nil, fmt.Errorf("failed to create initial population: %w", err)
	}

	return &Population{
		Config:       config,
		Networks:     networks,
		Reproduction: reproduction,
		Logger:       slog.Default(),
	}, nil
}

// Evaluate scores every network, records the generation statistics and
// updates Best.
func (p *Population) Evaluate(fitness FitnessFunc) (GenerationStats, error) {
	p.Generation++
	start := time.Now()

	if err := evaluate(p.Networks, fitness, p.Config.Evolution.Workers); err != nil {
		return GenerationStats{}, fmt.Errorf("generation %d: %w", p.Generation, err)
	}

	summary := summarize(fitnesses(p.Networks))
	currentBest := Select(p.Networks, 1)[0]
	if p.Best == nil || currentBest.Fitness < p.Best.Fitness {
		p.Best = currentBest.Duplicate()
		p.Best.Fitness = currentBest.Fitness
		p.logger().Info("new best network",
			"generation", p.Generation,
			"fitness", p.Best.Fitness,
		)
	}

	stats := GenerationStats{
		Generation:     p.Generation,
		PopulationSize: len(p.Networks),
		MeanFitness:    summary.Mean,
		BestFitness:    summary.Min,
		WorstFitness:   summary.Max,
		StdevFitness:   summary.Stdev,
		BestSoFar:      p.Best.Fitness,
		Converged:      summary.Mean < p.Config.Evolution.ConvergenceThreshold,
		Duration:       time.Since(start),
	}
	p.logger().Info("generation evaluated", "stats", stats)

	if err := p.Reporter.Write(stats); err != nil {
		return stats, fmt.Errorf("generation %d: %w", p.Generation, err)
	}
	return stats, nil
}

// Reproduce replaces the population with the survivors of truncation
// selection followed by their mutated clones.
func (p *Population) Reproduce() error {
	next, err := p.Reproduction.Reproduce(p.Networks)
	if err != nil {
		return fmt.Errorf("reproduction failed in generation %d: %w", p.Generation, err)
	}
	p.Networks = next
	return nil
}

// RunGeneration evaluates the population and, unless it has converged,
// produces the next generation.
func (p *Population) RunGeneration(fitness FitnessFunc) (GenerationStats, error) {
	stats, err := p.Evaluate(fitness)
	if err != nil {
		return stats, err
	}
	if stats.Converged {
		return stats, nil
	}
	return stats, p.Reproduce()
}

// Run evolves the population until mean fitness falls below the convergence
// threshold or MaxGenerations evaluation rounds have been performed. Reaching
// the cap is reported through Result.Status, not as an error.
func (p *Population) Run(fitness FitnessFunc) (*Result, error) {
	maxGenerations := p.Config.Evolution.MaxGenerations
	p.logger().Info("starting evolution",
		"shape", p.Config.Network.Shape,
		"pop_size", len(p.Networks),
		"survivors", p.Config.SurvivorCount(),
		"max_generations", maxGenerations,
	)

	for round := 1; ; round++ {
		stats, err := p.Evaluate(fitness)
		if err != nil {
			return nil, err
		}

		if stats.Converged {
			p.logger().Info("population converged",
				"generation", p.Generation,
				"mean_fitness", stats.MeanFitness,
				"threshold", p.Config.Evolution.ConvergenceThreshold,
			)
			return p.result(Converged, round, stats), nil
		}
		if round >= maxGenerations {
			p.logger().Warn("maximum generations reached without convergence",
				"generations", round,
				"mean_fitness", stats.MeanFitness,
				"best_fitness", p.Best.Fitness,
			)
			return p.result(NotConverged, round, stats), nil
		}

		if err := p.Reproduce(); err != nil {
			return nil, err
		}
	}
}

func (p *Population) result(status Status, rounds int, stats GenerationStats) *Result {
	return &Result{
		Status:      status,
		Generations: rounds,
		Stats:       stats,
		Best:        p.Best,
		Population:  p.Networks,
	}
}

func (p *Population) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
