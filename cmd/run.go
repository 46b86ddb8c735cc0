package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/store-sim/sim"
	"github.com/inference-sim/store-sim/sim/telemetry"
	"github.com/inference-sim/store-sim/sim/trace"
)

// runOptions carries the output side of a run; every field is optional.
type runOptions struct {
	Narrator   logrus.FieldLogger   // console narration (nil = silent)
	Collector  *telemetry.Collector // Prometheus metrics (nil = disabled)
	Tracer     *telemetry.DayTracer // OpenTelemetry day spans (nil = disabled)
	TraceLevel trace.TraceLevel     // observation trace verbosity
	Pacer      sim.Pacer            // wall-clock pacing (nil = none)
}

// runResult holds every store of a run, in run order, and its trace.
type runResult struct {
	Stores []*sim.Store
	Traces []*sim.TraceReporter
}

// runStores runs one freshly constructed store per configured day. Stores
// share nothing; with a fixed seed each day gets its own derived key.
// On cancellation the current store is still closed and later days are skipped.
func runStores(ctx context.Context, cfg sim.RunConfig, opts runOptions) (runResult, error) {
	var result runResult
	for i, day := range cfg.Days {
		key := sim.NewUnseededKey()
		if cfg.Seed != 0 {
			key = sim.NewSimulationKey(cfg.Seed + int64(i))
		}

		tr := sim.NewTraceReporter(opts.TraceLevel)
		reporters := sim.MultiReporter{tr}
		if opts.Narrator != nil {
			reporters = append(reporters, sim.NewLogReporter(opts.Narrator.WithField("day", day)))
		}
		if opts.Collector != nil {
			reporters = append(reporters, opts.Collector.ForStore(day))
		}
		dayCtx := ctx
		var span *telemetry.DaySpan
		if opts.Tracer != nil {
			dayCtx, span = opts.Tracer.StartDay(ctx, day)
			reporters = append(reporters, span)
		}

		store := sim.NewStore(cfg.StoreConfig(day), key, reporters)
		result.Stores = append(result.Stores, store)
		result.Traces = append(result.Traces, tr)

		_, err := sim.RunDay(dayCtx, store, cfg, opts.Pacer)
		if span != nil {
			span.Finish(err)
		}
		if err != nil {
			return result, fmt.Errorf("running %s: %w", day, err)
		}
	}
	return result, nil
}

// dayTrace is the YAML layout of one store's trace.
type dayTrace struct {
	Store   string                 `yaml:"store"`
	RunID   string                 `yaml:"run_id"`
	Trace   *trace.SimulationTrace `yaml:"trace"`
	Summary *trace.TraceSummary    `yaml:"summary"`
}

// writeTrace writes the traces of all stores to path as a YAML list.
func writeTrace(path string, result runResult) error {
	docs := make([]dayTrace, 0, len(result.Stores))
	for i, s := range result.Stores {
		tr := result.Traces[i].Trace
		docs = append(docs, dayTrace{
			Store:   s.Name,
			RunID:   s.RunID.String(),
			Trace:   tr,
			Summary: trace.Summarize(tr),
		})
	}
	data, err := yaml.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trace %s: %w", path, err)
	}
	return nil
}
