package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalMovements    int            `yaml:"total_movements"`
	PositionCount     int            `yaml:"positions"`
	DepartureCount    int            `yaml:"departures"`
	EvacuationCount   int            `yaml:"evacuations"`
	UniqueCustomers   int            `yaml:"unique_customers"`
	TotalCustomers    int            `yaml:"total_customers"` // from the last closing record
	AisleDistribution map[string]int `yaml:"aisle_distribution"`

	// MeanDwellTicks is the mean number of clock units between a customer's
	// first position and its checkout, over customers whose first position
	// was recorded. Zero without TraceLevelAll.
	MeanDwellTicks float64 `yaml:"mean_dwell_ticks"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		AisleDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalMovements = len(st.Movements)
	firstSeen := make(map[int]int64)
	seen := make(map[int]bool)
	totalDwell := int64(0)
	dwellCount := 0
	for _, m := range st.Movements {
		seen[m.CustomerID] = true
		switch m.Kind {
		case KindPosition:
			summary.PositionCount++
			summary.AisleDistribution[m.Location]++
			if _, ok := firstSeen[m.CustomerID]; !ok {
				firstSeen[m.CustomerID] = m.Tick
			}
		case KindDeparture, KindEvacuation:
			if m.Kind == KindDeparture {
				summary.DepartureCount++
			} else {
				summary.EvacuationCount++
			}
			if first, ok := firstSeen[m.CustomerID]; ok {
				totalDwell += m.Tick - first
				dwellCount++
			}
		}
	}
	summary.UniqueCustomers = len(seen)
	if dwellCount > 0 {
		summary.MeanDwellTicks = float64(totalDwell) / float64(dwellCount)
	}
	if n := len(st.Closings); n > 0 {
		summary.TotalCustomers = st.Closings[n-1].TotalCustomers
	}

	return summary
}
