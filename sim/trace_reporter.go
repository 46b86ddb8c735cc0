package sim

import "github.com/inference-sim/store-sim/sim/trace"

// TraceReporter records observations into a trace.SimulationTrace.
type TraceReporter struct {
	Trace *trace.SimulationTrace
}

// NewTraceReporter creates a TraceReporter with a fresh trace at level.
func NewTraceReporter(level trace.TraceLevel) *TraceReporter {
	return &TraceReporter{Trace: trace.NewSimulationTrace(trace.TraceConfig{Level: level})}
}

func (r *TraceReporter) Observe(obs Observation) {
	r.Trace.RecordMovement(trace.MovementRecord{
		CustomerID: obs.CustomerID,
		Tick:       obs.Tick,
		Time:       obs.Time,
		Location:   string(obs.Location),
		Kind:       string(obs.Kind),
	})
}

func (r *TraceReporter) TickEnd(snap TickSnapshot) {
	active := make(map[string]int, len(snap.Active))
	for loc, n := range snap.Active {
		active[string(loc)] = n
	}
	r.Trace.RecordTick(trace.TickRecord{
		Tick:           snap.Tick,
		Admitted:       snap.Admitted,
		Active:         active,
		TotalCustomers: snap.TotalCustomers,
	})
}

func (r *TraceReporter) Announce(Stamp, string) {}

func (r *TraceReporter) Closed(summary ClosingSummary) {
	r.Trace.RecordClosing(trace.ClosingRecord{
		Store:          summary.Store,
		RunID:          summary.RunID,
		Tick:           summary.Tick,
		Time:           summary.Time,
		TotalCustomers: summary.TotalCustomers,
		Evacuated:      summary.Evacuated,
	})
}
