package sim

import "math/rand"

// transitionWeights holds one row per location (row order = locations). Each
// row is a set of relative weights over the destination columns. Rows are
// used as given; they are not renormalized.
//
// The checkout row is all zero: checkout is absorbing and is never sampled from.
var transitionWeights = [numLocations][numLocations]float64{
	// checkout
	{0.0, 0.0, 0.0, 0.0, 0.0},
	// dairy
	{0.3930326992947211, 0.0, 0.22248343663175893, 0.18935670014960462, 0.19512716392391535},
	// drinks
	{0.5372599231754162, 0.02714468629961588, 0.0, 0.21895006402048656, 0.21664532650448143},
	// fruit
	{0.5001952362358454, 0.23799297149550958, 0.13607965638422492, 0.0, 0.12573213588442014},
	// spices
	{0.25199786893979753, 0.3231220031965903, 0.27277570591369205, 0.15210442194992008, 0.0},
}

// Arrivals never start at checkout, so the initial distribution has its own
// outcome set.
var (
	initialLocations = [...]Location{Fruit, Dairy, Spices, Drinks}
	initialWeights   = [...]float64{0.3069573006867722, 0.2782920274708868, 0.21887130486712453, 0.1958793669752165}
)

// TransitionWeights returns a copy of the weight row for from, in
// AllLocations order. Panics if from is not a valid location.
func TransitionWeights(from Location) []float64 {
	row := transitionWeights[mustIndex(from)]
	out := make([]float64, numLocations)
	copy(out, row[:])
	return out
}

// InitialLocations returns the possible starting aisles of a new arrival.
func InitialLocations() []Location {
	out := make([]Location, len(initialLocations))
	copy(out, initialLocations[:])
	return out
}

// InitialWeights returns the arrival weights, aligned with InitialLocations.
func InitialWeights() []float64 {
	out := make([]float64, len(initialWeights))
	copy(out, initialWeights[:])
	return out
}

// NextLocation draws the location a customer at from moves to.
// Sampling from checkout panics: its row has no weight to draw from.
func NextLocation(rng *rand.Rand, from Location) Location {
	row := transitionWeights[mustIndex(from)]
	return locations[SampleWeighted(rng, row[:])]
}

// InitialLocation draws the starting aisle for a new arrival.
func InitialLocation(rng *rand.Rand) Location {
	return initialLocations[SampleWeighted(rng, initialWeights[:])]
}
