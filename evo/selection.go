package evo

import (
	"sort"

	"github.com/baldhumanity/evonet-go/evo/nn"
)

// Select ranks networks by ascending fitness and returns the n lowest.
// Ties keep their population order, so the result is deterministic.
// The input slice is not reordered.
func Select(networks []*nn.Network, n int) []*nn.Network {
	ranked := make([]*nn.Network, len(networks))
	copy(ranked, networks)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness < ranked[j].Fitness
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	if n < 0 {
		n = 0
	}
	return ranked[:n]
}
