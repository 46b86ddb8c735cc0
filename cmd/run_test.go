package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/store-sim/sim"
	"github.com/inference-sim/store-sim/sim/telemetry"
	"github.com/inference-sim/store-sim/sim/trace"
)

func fastRunConfig(days ...string) sim.RunConfig {
	cfg := sim.DefaultRunConfig()
	cfg.Days = days
	cfg.Pace = 0
	cfg.ClosingDelay = 0
	cfg.Seed = 42
	return cfg
}

func TestRunStores_OneIndependentStorePerDay(t *testing.T) {
	// GIVEN two configured days
	cfg := fastRunConfig("monday", "tuesday")

	// WHEN the run executes
	result, err := runStores(context.Background(), cfg, runOptions{Pacer: sim.NoPacer})

	// THEN each day gets its own closed store with a distinct run id
	require.NoError(t, err)
	require.Len(t, result.Stores, 2)
	require.Len(t, result.Traces, 2)
	assert.Equal(t, "monday", result.Stores[0].Name)
	assert.Equal(t, "tuesday", result.Stores[1].Name)
	assert.NotEqual(t, result.Stores[0].RunID, result.Stores[1].RunID)
	for _, s := range result.Stores {
		assert.False(t, s.ClosingTime.IsZero(), "%s must be closed", s.Name)
		assert.Zero(t, s.ActiveCount(), "%s must be drained", s.Name)
		assert.Equal(t, 3, s.Metrics.Ticks, "30 units / 10 per tick")
	}
}

func TestRunStores_SameSeed_SameCustomers(t *testing.T) {
	cfg := fastRunConfig("friday")

	a, err := runStores(context.Background(), cfg, runOptions{Pacer: sim.NoPacer})
	require.NoError(t, err)
	b, err := runStores(context.Background(), cfg, runOptions{Pacer: sim.NoPacer})
	require.NoError(t, err)

	assert.Equal(t, a.Stores[0].TotalCustomers(), b.Stores[0].TotalCustomers())
	assert.Equal(t, a.Stores[0].Metrics.AisleVisits, b.Stores[0].Metrics.AisleVisits)
}

func TestRunStores_NarratesAndCollects(t *testing.T) {
	// GIVEN a narrator and a collector on a fresh registry
	narrator, hook := test.NewNullLogger()
	narrator.SetLevel(logrus.InfoLevel)
	collector, err := telemetry.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	// WHEN one day runs
	result, err := runStores(context.Background(), fastRunConfig("friday"), runOptions{
		Narrator:  narrator,
		Collector: collector,
		Pacer:     sim.NoPacer,
	})

	// THEN the narration ends with the thank-you line
	require.NoError(t, err)
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Contains(t, last.Message, sim.StoreBrand)
	assert.Equal(t, "friday", last.Data["day"])

	// AND the collector saw the close and every admission
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Closings.WithLabelValues("friday")))
	assert.Equal(t, float64(result.Stores[0].TotalCustomers()), testutil.ToFloat64(collector.Admitted.WithLabelValues("friday")))
}

func TestRunStores_Cancelled_ClosesCurrentStoreAndStops(t *testing.T) {
	// GIVEN a context that is already cancelled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN a two-day run starts with a pacer that honours the context
	result, err := runStores(ctx, fastRunConfig("monday", "tuesday"), runOptions{Pacer: sim.SleepPacer})

	// THEN the first store is closed and the second never opens
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, result.Stores, 1)
	assert.False(t, result.Stores[0].ClosingTime.IsZero())
	assert.Zero(t, result.Stores[0].ActiveCount())
}

func TestRunStores_OneSpanPerDay(t *testing.T) {
	// GIVEN a day tracer on an in-memory recorder
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewDayTracer(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	// WHEN two days run
	_, err := runStores(context.Background(), fastRunConfig("saturday", "sunday"), runOptions{Tracer: tracer, Pacer: sim.NoPacer})

	// THEN both spans ended without error
	require.NoError(t, err)
	spans := recorder.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, "store.day", span.Name())
		assert.NotEqual(t, codes.Error, span.Status().Code)
	}
}

func TestRunStores_Cancelled_MarksSpanFailed(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewDayTracer(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runStores(ctx, fastRunConfig("monday"), runOptions{Tracer: tracer, Pacer: sim.SleepPacer})

	require.ErrorIs(t, err, context.Canceled)
	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestWriteTrace_WritesDecodableYAML(t *testing.T) {
	// GIVEN a recorded run
	cfg := fastRunConfig("friday")
	result, err := runStores(context.Background(), cfg, runOptions{TraceLevel: trace.TraceLevelAll, Pacer: sim.NoPacer})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "trace.yaml")

	// WHEN it is written
	require.NoError(t, writeTrace(path, result))

	// THEN the file decodes back to one document per store
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var docs []dayTrace
	require.NoError(t, yaml.Unmarshal(data, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "friday", docs[0].Store)
	assert.Equal(t, result.Stores[0].RunID.String(), docs[0].RunID)
	require.NotNil(t, docs[0].Summary)
	assert.Equal(t, result.Stores[0].TotalCustomers(), docs[0].Summary.TotalCustomers)
	require.NotNil(t, docs[0].Trace)
	assert.Len(t, docs[0].Trace.Closings, 1)
}
