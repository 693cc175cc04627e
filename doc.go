// Package evo provides a small neuroevolution engine: fixed-shape feed-forward
// networks improved by an asexual clone-and-mutate generational loop.
//
// Networks are described by a shape, the list of layer widths from input to
// output. Each generation every network is scored by a caller-supplied fitness
// function (lower is better), the lowest-scoring third survives, and each
// survivor contributes two mutated clones to the next generation.
//
// Basic usage:
//
//	// Load configuration
//	config, err := evo.LoadConfig("path/to/config.ini")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create a new population
//	pop, err := evo.NewPopulation(config)
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	// Evolve until the mean error drops below the threshold
//	result, err := pop.Run(func(net *nn.Network) (float64, error) {
//		out, err := net.Run([]float64{1, 0})
//		if err != nil {
//			return 0, err
//		}
//		return math.Abs(out[0] - 1), nil
//	})
//	if err != nil {
//		log.Fatalf("Error running evolution: %v", err)
//	}
//	fmt.Println(result.Status, result.Best.Fitness)
package evo
