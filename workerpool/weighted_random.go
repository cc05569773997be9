package workerpool

import (
	"fmt"
	"math/rand"
)

// WeightedRandom picks a worker at random, weighted in proportion to each
// worker's configured capacity — for a pool of heterogeneous workers
// (for example, one bound to a faster CPU core) rather than identical
// ones.
type WeightedRandom struct {
	weights     []int
	totalWeight int
}

// NewWeightedRandom creates a balancer over len(weights) workers, worker i
// weighted by weights[i]. Panics if weights is empty or sums to zero —
// there would be no worker that could ever be selected.
func NewWeightedRandom(weights []int) *WeightedRandom {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic(fmt.Sprintf("workerpool: WeightedRandom requires a positive total weight, got %v", weights))
	}
	return &WeightedRandom{weights: weights, totalWeight: total}
}

func (b *WeightedRandom) Pick(objectID uint64) int {
	r := rand.Intn(b.totalWeight)
	for i, w := range b.weights {
		r -= w
		if r < 0 {
			return i
		}
	}
	// Unreachable unless weights and totalWeight have fallen out of sync.
	return len(b.weights) - 1
}

func (b *WeightedRandom) Name() string { return "WeightedRandom" }
