// Tracks end-of-day statistics of a store run: visitors, how they left,
// and how crowded the store got.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about one store run for final reporting.
// It is a Reporter, so it can be combined with others via MultiReporter.
type Metrics struct {
	Ticks             int // ticks executed before closing
	TotalCustomers    int // customers admitted
	OrganicDepartures int // customers that sampled checkout
	Evacuations       int // customers forced out at closing
	PeakOccupancy     int // max simultaneously active customers

	// AisleVisits counts position reports per aisle, summed over ticks.
	AisleVisits map[Location]int

	// DeparturesByOrigin counts organic departures by the aisle last reported
	// before checkout.
	DeparturesByOrigin map[Location]int

	lastSeen map[int]Location
	kinds    map[ObservationKind]int
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		AisleVisits:        make(map[Location]int),
		DeparturesByOrigin: make(map[Location]int),
		lastSeen:           make(map[int]Location),
		kinds:              make(map[ObservationKind]int),
	}
}

func (m *Metrics) Observe(obs Observation) {
	m.kinds[obs.Kind]++
	switch obs.Kind {
	case KindPosition:
		m.AisleVisits[obs.Location]++
		m.lastSeen[obs.CustomerID] = obs.Location
	case KindDeparture:
		m.OrganicDepartures++
		if from, ok := m.lastSeen[obs.CustomerID]; ok {
			m.DeparturesByOrigin[from]++
		}
		delete(m.lastSeen, obs.CustomerID)
	case KindEvacuation:
		m.Evacuations++
		delete(m.lastSeen, obs.CustomerID)
	}
}

func (m *Metrics) TickEnd(snap TickSnapshot) {
	m.Ticks++
	m.TotalCustomers = snap.TotalCustomers
	active := 0
	for _, n := range snap.Active {
		active += n
	}
	if active > m.PeakOccupancy {
		m.PeakOccupancy = active
	}
}

func (m *Metrics) Announce(Stamp, string) {}

func (m *Metrics) Closed(summary ClosingSummary) {
	m.TotalCustomers = summary.TotalCustomers
}

// Observations returns how many observations of the given kind were seen.
func (m *Metrics) Observations(kind ObservationKind) int {
	return m.kinds[kind]
}

// Print writes aggregated metrics at the end of the run to w.
func (m *Metrics) Print(w io.Writer, name string) {
	fmt.Fprintf(w, "=== Store Metrics: %s ===\n", name)
	fmt.Fprintf(w, "Ticks                : %d\n", m.Ticks)
	fmt.Fprintf(w, "Total Customers      : %d\n", m.TotalCustomers)
	fmt.Fprintf(w, "Organic Departures   : %d\n", m.OrganicDepartures)
	fmt.Fprintf(w, "Closing Evacuations  : %d\n", m.Evacuations)
	fmt.Fprintf(w, "Peak Occupancy       : %d\n", m.PeakOccupancy)
	for _, loc := range locations {
		if loc.IsTerminal() {
			continue
		}
		fmt.Fprintf(w, "Visits %-13s : %d\n", loc, m.AisleVisits[loc])
	}
}
