// Defines the Customer entity: one shopper's random walk through the aisles.

package sim

import (
	"fmt"
	"math/rand"
)

// Customer is a single shopper. A customer is active until it reaches
// checkout; that transition happens exactly once and is irreversible.
//
// Invariant: Location() == Checkout if and only if !Active().
type Customer struct {
	id       int
	location Location
	active   bool
}

// newCustomer creates an active customer at start. Customers only ever
// start in a non-terminal aisle.
func newCustomer(id int, start Location) *Customer {
	mustIndex(start)
	if start.IsTerminal() {
		panic(fmt.Sprintf("customer %d cannot start at %q", id, start))
	}
	return &Customer{id: id, location: start, active: true}
}

// ID returns the customer's 1-based id, unique within one store run.
func (c *Customer) ID() int { return c.id }

// Location returns the aisle the customer currently occupies.
func (c *Customer) Location() Location { return c.location }

// Active reports whether the customer is still in the store.
func (c *Customer) Active() bool { return c.active }

// Advance moves an active customer by one draw from its current row of the
// transition table. Reaching checkout deactivates the customer and reports a
// departure to r. Calling Advance on an inactive customer does nothing.
// Returns whether the customer was advanced.
func (c *Customer) Advance(rng *rand.Rand, at Stamp, r Reporter) bool {
	if !c.active {
		return false
	}
	c.location = NextLocation(rng, c.location)
	if c.location.IsTerminal() {
		c.active = false
		r.Observe(Observation{Stamp: at, CustomerID: c.id, Location: c.location, Kind: KindDeparture})
	}
	return true
}

// evacuate force-checks-out an active customer without sampling.
func (c *Customer) evacuate(at Stamp, r Reporter) bool {
	if !c.active {
		return false
	}
	c.location = Checkout
	c.active = false
	r.Observe(Observation{Stamp: at, CustomerID: c.id, Location: c.location, Kind: KindEvacuation})
	return true
}

// String returns a human-readable representation of the customer.
func (c *Customer) String() string {
	return fmt.Sprintf("Customer %d, is at %s", c.id, c.location)
}
