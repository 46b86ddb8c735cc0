package sim

import "time"

// recordingReporter keeps every call in order for assertions.
type recordingReporter struct {
	observations  []Observation
	snapshots     []TickSnapshot
	announcements []string
	summaries     []ClosingSummary
}

func (r *recordingReporter) Observe(obs Observation)   { r.observations = append(r.observations, obs) }
func (r *recordingReporter) TickEnd(snap TickSnapshot) { r.snapshots = append(r.snapshots, snap) }
func (r *recordingReporter) Announce(_ Stamp, msg string) {
	r.announcements = append(r.announcements, msg)
}
func (r *recordingReporter) Closed(s ClosingSummary) { r.summaries = append(r.summaries, s) }

// ofKind filters the recorded observations by kind.
func (r *recordingReporter) ofKind(kind ObservationKind) []Observation {
	var out []Observation
	for _, o := range r.observations {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

// fixedNow is the wall clock used by test stores.
var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// newTestStore creates a store with a fixed seed and clock.
func newTestStore(duration int64, reporter Reporter) *Store {
	s := NewStore(StoreConfig{Name: "friday", Duration: duration, TickSize: DefaultTickSize}, NewSimulationKey(42), reporter)
	s.Now = func() time.Time { return fixedNow }
	return s
}

// couplingViolations returns the ids of customers breaking checkout <=> inactive.
func couplingViolations(s *Store) []int {
	var bad []int
	for _, c := range s.Customers {
		if (c.Location() == Checkout) == c.Active() {
			bad = append(bad, c.ID())
		}
	}
	return bad
}
