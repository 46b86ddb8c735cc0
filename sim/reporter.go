package sim

import "time"

// ObservationKind says why an observation was emitted.
type ObservationKind string

const (
	// KindPosition is the per-tick report of an active customer's aisle.
	KindPosition ObservationKind = "position"
	// KindDeparture is an organic transition into checkout.
	KindDeparture ObservationKind = "departure"
	// KindEvacuation is a forced checkout at closing time.
	KindEvacuation ObservationKind = "evacuation"
)

// Stamp pairs wall-clock time with the simulation clock.
type Stamp struct {
	Time time.Time
	Tick int64
}

// Observation is one (timestamp, customer, location) report.
type Observation struct {
	Stamp
	CustomerID int
	Location   Location
	Kind       ObservationKind
}

// TickSnapshot is emitted once per tick after all positions were reported.
type TickSnapshot struct {
	Stamp
	Admitted       int              // customers admitted this tick
	Active         map[Location]int // active customers per aisle
	TotalCustomers int              // customers admitted since opening
}

// ClosingSummary is the end-of-day report emitted by Store.Close.
type ClosingSummary struct {
	Stamp
	Store          string
	RunID          string
	TotalCustomers int // every customer ever admitted
	Evacuated      int // customers force-checked-out by this Close call
}

// Reporter receives everything the engine observes. Implementations decide
// where it goes (console, trace, metrics); the engine never does I/O itself.
type Reporter interface {
	Observe(obs Observation)
	TickEnd(snap TickSnapshot)
	Announce(at Stamp, message string)
	Closed(summary ClosingSummary)
}

// NopReporter discards all observations.
type NopReporter struct{}

func (NopReporter) Observe(Observation)    {}
func (NopReporter) TickEnd(TickSnapshot)   {}
func (NopReporter) Announce(Stamp, string) {}
func (NopReporter) Closed(ClosingSummary)  {}

// MultiReporter fans every call out to each reporter in order.
type MultiReporter []Reporter

func (m MultiReporter) Observe(obs Observation) {
	for _, r := range m {
		r.Observe(obs)
	}
}

func (m MultiReporter) TickEnd(snap TickSnapshot) {
	for _, r := range m {
		r.TickEnd(snap)
	}
}

func (m MultiReporter) Announce(at Stamp, message string) {
	for _, r := range m {
		r.Announce(at, message)
	}
}

func (m MultiReporter) Closed(summary ClosingSummary) {
	for _, r := range m {
		r.Closed(summary)
	}
}
