package evo

import (
	"fmt"
	"sync"

	"github.com/baldhumanity/evonet-go/evo/nn"
)

// evaluate scores every network with fitness. With more than one worker the
// networks are spread over a pool of goroutines; each result is written back
// to its own network, so the outcome does not depend on scheduling.
func evaluate(networks []*nn.Network, fitness FitnessFunc, workers int) error {
	if workers <= 1 || len(networks) < 2 {
		for i, net := range networks {
			f, err := fitness(net)
			if err != nil {
				return fmt.Errorf("fitness evaluation failed for network %d: %w", i, err)
			}
			net.Fitness = f
		}
		return nil
	}

	workers = min(workers, len(networks))
	jobs := make(chan int)
	errs := make([]error, len(networks))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f, err := fitness(networks[i])
				if err != nil {
					errs[i] = err
					continue
				}
				networks[i].Fitness = f
			}
		}()
	}
	for i := range networks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("fitness evaluation failed for network %d: %w", i, err)
		}
	}
	return nil
}
