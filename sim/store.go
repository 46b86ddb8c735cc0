// sim/store.go
package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ClosingTimeLayout formats Store.ClosingTime in String.
const ClosingTimeLayout = "2006-01-02 15:04:05"

// Store is the population controller. It owns every customer ever admitted
// (in arrival order), the simulation clock and the random streams, and drives
// one tick at a time. Customers are never removed; departed customers stay
// in Customers as inactive.
type Store struct {
	Name     string
	RunID    uuid.UUID
	Clock    int64 // elapsed simulation time
	Duration int64 // the store closes once Clock >= Duration
	TickSize int64
	// NextID is the id the next admitted customer gets. It starts at 1 and
	// always exceeds every id handed out so far.
	NextID int
	// ClosingTime is stamped by Close; zero while the store is open.
	ClosingTime time.Time
	Customers   []*Customer
	Metrics     *Metrics

	// Now supplies wall-clock timestamps for observations.
	Now func() time.Time

	rng      *PartitionedRNG
	reporter Reporter
}

// NewStore creates an empty, open store. A nil reporter discards observations.
// Every store is independent: nothing is shared between instances.
func NewStore(cfg StoreConfig, key SimulationKey, reporter Reporter) *Store {
	if cfg.Duration <= 0 {
		panic(fmt.Sprintf("NewStore: Duration must be > 0, got %d", cfg.Duration))
	}
	if cfg.TickSize <= 0 {
		panic(fmt.Sprintf("NewStore: TickSize must be > 0, got %d", cfg.TickSize))
	}
	if reporter == nil {
		reporter = NopReporter{}
	}
	m := NewMetrics()
	return &Store{
		Name:      cfg.Name,
		RunID:     uuid.New(),
		Duration:  cfg.Duration,
		TickSize:  cfg.TickSize,
		NextID:    1,
		Customers: make([]*Customer, 0),
		Metrics:   m,
		Now:       time.Now,
		rng:       NewPartitionedRNG(key),
		reporter:  MultiReporter{m, reporter},
	}
}

// RNG exposes the store's partitioned random streams.
func (s *Store) RNG() *PartitionedRNG {
	return s.rng
}

// Open reports whether the store still has time left before closing.
func (s *Store) Open() bool {
	return s.Clock < s.Duration
}

func (s *Store) stamp() Stamp {
	return Stamp{Time: s.Now(), Tick: s.Clock}
}

// Admit creates n customers with fresh, increasing ids at aisles drawn from
// the initial distribution, appended in creation order. Panics if n < 0.
func (s *Store) Admit(n int) {
	if n < 0 {
		panic(fmt.Sprintf("Admit: negative batch size %d", n))
	}
	rng := s.rng.ForSubsystem(SubsystemArrival)
	for i := 0; i < n; i++ {
		c := newCustomer(s.NextID, InitialLocation(rng))
		s.Customers = append(s.Customers, c)
		s.NextID++
		logrus.Debugf("[tick %07d] %s: admitted customer %d at %s", s.Clock, s.Name, c.ID(), c.Location())
	}
}

// AdvanceAll advances every customer that is active at call time exactly
// once, in arrival order. A customer that checks out during the pass is not
// revisited.
func (s *Store) AdvanceAll() {
	rng := s.rng.ForSubsystem(SubsystemMovement)
	at := s.stamp()
	for _, c := range s.activeCustomers() {
		c.Advance(rng, at, s.reporter)
	}
}

// ReportActive emits a position observation for every active customer.
// It does not mutate any customer.
func (s *Store) ReportActive() {
	at := s.stamp()
	for _, c := range s.activeCustomers() {
		s.reporter.Observe(Observation{Stamp: at, CustomerID: c.ID(), Location: c.Location(), Kind: KindPosition})
	}
}

// Tick runs one simulation tick: existing customers move first, then batch
// new customers arrive, then active customers and a TickSnapshot are
// reported, and finally the clock advances. Arrivals therefore wait at least one full tick at their
// first aisle before they can move.
func (s *Store) Tick(batch int) {
	s.AdvanceAll()
	s.Admit(batch)
	s.ReportActive()
	s.reporter.TickEnd(TickSnapshot{
		Stamp:          s.stamp(),
		Admitted:       batch,
		Active:         s.Counts(),
		TotalCustomers: s.TotalCustomers(),
	})
	logrus.Debugf("[tick %07d] %s: %d active, %d admitted so far", s.Clock, s.Name, s.ActiveCount(), s.TotalCustomers())
	s.Clock += s.TickSize
}

// Announce broadcasts message to the reporter at the current clock.
func (s *Store) Announce(message string) {
	s.reporter.Announce(s.stamp(), message)
}

// Close force-checks-out every active customer (bypassing the transition
// model), then stamps ClosingTime once the evacuation is done and emits the
// end-of-day summary.
//
// Calling Close again is harmless: it finds nobody to evacuate, re-stamps
// ClosingTime and re-emits a summary with Evacuated == 0.
func (s *Store) Close() ClosingSummary {
	at := s.stamp()
	evacuated := 0
	for _, c := range s.activeCustomers() {
		if c.evacuate(at, s.reporter) {
			evacuated++
		}
	}
	closed := s.stamp()
	s.ClosingTime = closed.Time
	summary := ClosingSummary{
		Stamp:          closed,
		Store:          s.Name,
		RunID:          s.RunID.String(),
		TotalCustomers: s.TotalCustomers(),
		Evacuated:      evacuated,
	}
	s.reporter.Closed(summary)
	logrus.Infof("[tick %07d] %s closed: %d customers, %d evacuated", s.Clock, s.Name, summary.TotalCustomers, evacuated)
	return summary
}

// activeCustomers returns the customers active right now, in arrival order.
func (s *Store) activeCustomers() []*Customer {
	active := make([]*Customer, 0, len(s.Customers))
	for _, c := range s.Customers {
		if c.Active() {
			active = append(active, c)
		}
	}
	return active
}

// ActiveCount returns the number of customers still in the store.
func (s *Store) ActiveCount() int {
	n := 0
	for _, c := range s.Customers {
		if c.Active() {
			n++
		}
	}
	return n
}

// Counts returns the number of active customers per non-terminal aisle.
// Every aisle is present, with zero if empty.
func (s *Store) Counts() map[Location]int {
	counts := make(map[Location]int, numLocations-1)
	for _, loc := range locations {
		if !loc.IsTerminal() {
			counts[loc] = 0
		}
	}
	for _, c := range s.Customers {
		if c.Active() {
			counts[c.Location()]++
		}
	}
	return counts
}

// TotalCustomers returns how many customers were admitted so far.
func (s *Store) TotalCustomers() int {
	return s.NextID - 1
}

// This method returns a human-readable end-of-day representation of the store.
func (s *Store) String() string {
	closing := "open"
	if !s.ClosingTime.IsZero() {
		closing = s.ClosingTime.Format(ClosingTimeLayout)
	}
	return fmt.Sprintf("Name: %s, Closing time: %s. Total Number of customers: %d", s.Name, closing, s.TotalCustomers())
}
