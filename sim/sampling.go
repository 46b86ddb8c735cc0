package sim

import (
	"fmt"
	"math/rand"
	"sort"
)

// SampleWeighted draws one index from weights, treating them as relative
// (unnormalized) sampling weights. An index with zero weight is never returned.
//
// Weights must be non-negative with a positive total. Anything else means the
// caller sampled from a row that has no valid distribution (e.g. the checkout
// row), which is a programming defect, so SampleWeighted panics.
func SampleWeighted(rng *rand.Rand, weights []float64) int {
	cdf := make([]float64, len(weights))
	total := 0.0
	last := -1
	for i, w := range weights {
		if w < 0 {
			panic(fmt.Sprintf("SampleWeighted: negative weight %f at index %d", w, i))
		}
		if w > 0 {
			last = i
		}
		total += w
		cdf[i] = total
	}
	if last < 0 {
		panic(fmt.Sprintf("SampleWeighted: weights %v have no positive entry", weights))
	}

	u := rng.Float64() * total
	// First cumulative value strictly above u. Zero-weight entries share their
	// predecessor's cumulative value, so they are always skipped.
	idx := sort.Search(len(cdf), func(i int) bool { return cdf[i] > u })
	if idx > last {
		// u rounded up to total
		idx = last
	}
	return idx
}

// SampleBatchSize draws a uniform integer in [lo, hi]. Panics if lo > hi or
// lo < 0.
func SampleBatchSize(rng *rand.Rand, lo, hi int) int {
	if lo < 0 || lo > hi {
		panic(fmt.Sprintf("SampleBatchSize: invalid bounds [%d, %d]", lo, hi))
	}
	return lo + rng.Intn(hi-lo+1)
}
