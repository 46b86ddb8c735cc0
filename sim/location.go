package sim

import "fmt"

// Location is an aisle of the store. The set of locations is fixed.
type Location string

const (
	Checkout Location = "checkout"
	Dairy    Location = "dairy"
	Drinks   Location = "drinks"
	Fruit    Location = "fruit"
	Spices   Location = "spices"
)

// numLocations is the size of the state space.
const numLocations = 5

// locations is the state space in transition-row column order.
var locations = [numLocations]Location{Checkout, Dairy, Drinks, Fruit, Spices}

// AllLocations returns the state space in transition-row column order.
func AllLocations() []Location {
	out := make([]Location, numLocations)
	copy(out, locations[:])
	return out
}

// LocationIndex returns the column index of loc, or false if loc is not part
// of the state space.
func LocationIndex(loc Location) (int, bool) {
	for i, l := range locations {
		if l == loc {
			return i, true
		}
	}
	return -1, false
}

// Valid reports whether loc is one of the fixed locations.
func (loc Location) Valid() bool {
	_, ok := LocationIndex(loc)
	return ok
}

// IsTerminal reports whether loc is the absorbing checkout state.
func (loc Location) IsTerminal() bool {
	return loc == Checkout
}

// mustIndex panics on locations outside the state space. Such a location can
// only come from a configuration defect.
func mustIndex(loc Location) int {
	idx, ok := LocationIndex(loc)
	if !ok {
		panic(fmt.Sprintf("unknown location %q; valid locations: %v", loc, locations))
	}
	return idx
}
