package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocations_FixedOrder(t *testing.T) {
	assert.Equal(t, []Location{Checkout, Dairy, Drinks, Fruit, Spices}, AllLocations())
}

func TestAllLocations_ReturnsCopy(t *testing.T) {
	locs := AllLocations()
	locs[0] = "bakery"
	assert.Equal(t, Checkout, AllLocations()[0])
}

func TestLocation_ValidAndTerminal(t *testing.T) {
	tests := []struct {
		loc      Location
		valid    bool
		terminal bool
	}{
		{Checkout, true, true},
		{Dairy, true, false},
		{Drinks, true, false},
		{Fruit, true, false},
		{Spices, true, false},
		{"bakery", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.loc), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.loc.Valid())
			assert.Equal(t, tt.terminal, tt.loc.IsTerminal())
		})
	}
}

func TestTransitionWeights_PreservedAsGiven(t *testing.T) {
	// Rows are not renormalized
	assert.Equal(t,
		[]float64{0.3930326992947211, 0.0, 0.22248343663175893, 0.18935670014960462, 0.19512716392391535},
		TransitionWeights(Dairy))
	assert.Equal(t,
		[]float64{0.25199786893979753, 0.3231220031965903, 0.27277570591369205, 0.15210442194992008, 0.0},
		TransitionWeights(Spices))
}

func TestTransitionWeights_CheckoutRowIsZero(t *testing.T) {
	for _, w := range TransitionWeights(Checkout) {
		assert.Zero(t, w)
	}
}

func TestTransitionWeights_NonTerminalRows_SumToAboutOne(t *testing.T) {
	for _, loc := range AllLocations() {
		if loc.IsTerminal() {
			continue
		}
		sum := 0.0
		for _, w := range TransitionWeights(loc) {
			require.GreaterOrEqual(t, w, 0.0)
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "row %s", loc)
	}
}

func TestTransitionWeights_ReturnsCopy(t *testing.T) {
	row := TransitionWeights(Fruit)
	row[0] = 99
	assert.NotEqual(t, 99.0, TransitionWeights(Fruit)[0])
}

func TestTransitionWeights_InvalidLocation_Panics(t *testing.T) {
	assert.PanicsWithValue(t,
		`unknown location "bakery"; valid locations: [checkout dairy drinks fruit spices]`,
		func() { TransitionWeights("bakery") })
}

func TestInitialDistribution_ExcludesCheckout(t *testing.T) {
	locs := InitialLocations()
	weights := InitialWeights()
	require.Len(t, weights, len(locs))
	assert.Equal(t, []Location{Fruit, Dairy, Spices, Drinks}, locs)
	assert.NotContains(t, locs, Checkout)
}

func TestInitialLocation_NeverCheckout(t *testing.T) {
	rng := newRandFromSeed(9)
	seen := make(map[Location]int)
	for i := 0; i < 5000; i++ {
		loc := InitialLocation(rng)
		require.False(t, loc.IsTerminal())
		seen[loc]++
	}
	assert.Len(t, seen, 4)
	// fruit has the highest arrival weight
	assert.Greater(t, seen[Fruit], seen[Drinks])
}

func TestNextLocation_FromCheckout_Panics(t *testing.T) {
	assert.Panics(t, func() { NextLocation(newRandFromSeed(1), Checkout) })
}

func TestNextLocation_NeverSelfLoopsOnZeroDiagonal(t *testing.T) {
	// Every non-terminal row has zero weight on its own aisle
	rng := newRandFromSeed(2)
	for _, from := range []Location{Dairy, Drinks, Fruit, Spices} {
		for i := 0; i < 1000; i++ {
			require.NotEqual(t, from, NextLocation(rng, from))
		}
	}
}
