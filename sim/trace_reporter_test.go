package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/store-sim/sim/trace"
)

func TestTraceReporter_FullRun_MatchesStore(t *testing.T) {
	// GIVEN a store traced at the most verbose level
	tr := NewTraceReporter(trace.TraceLevelAll)
	s := newTestStore(50, tr)

	// WHEN a day is run
	_, err := RunDay(context.Background(), s, testRunConfig(), nil)
	require.NoError(t, err)

	// THEN the summary agrees with the store's own metrics
	sum := trace.Summarize(tr.Trace)
	assert.Equal(t, s.TotalCustomers(), sum.TotalCustomers)
	assert.Equal(t, s.TotalCustomers(), sum.UniqueCustomers)
	assert.Equal(t, s.Metrics.OrganicDepartures, sum.DepartureCount)
	assert.Equal(t, s.Metrics.Evacuations, sum.EvacuationCount)
	assert.Equal(t, s.Metrics.Observations(KindPosition), sum.PositionCount)
	assert.Len(t, tr.Trace.Ticks, 5)
	require.Len(t, tr.Trace.Closings, 1)
	assert.Equal(t, s.RunID.String(), tr.Trace.Closings[0].RunID)
	assert.Greater(t, sum.MeanDwellTicks, 0.0)
}

func TestTraceReporter_DeparturesLevel_SkipsPositions(t *testing.T) {
	tr := NewTraceReporter(trace.TraceLevelDepartures)
	s := newTestStore(30, tr)
	_, err := RunDay(context.Background(), s, testRunConfig(), nil)
	require.NoError(t, err)

	for _, m := range tr.Trace.Movements {
		assert.NotEqual(t, trace.KindPosition, m.Kind)
	}
	assert.Len(t, tr.Trace.Movements, s.TotalCustomers())
	assert.Empty(t, tr.Trace.Ticks)
}

func TestObservationKinds_MatchTraceKinds(t *testing.T) {
	assert.Equal(t, trace.KindPosition, string(KindPosition))
	assert.Equal(t, trace.KindDeparture, string(KindDeparture))
	assert.Equal(t, trace.KindEvacuation, string(KindEvacuation))
}
