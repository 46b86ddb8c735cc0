package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	sim "github.com/inference-sim/store-sim/sim"
	"github.com/inference-sim/store-sim/sim/telemetry"
	"github.com/inference-sim/store-sim/sim/trace"
)

var (
	// CLI flags for the store day
	configPath   string        // Optional YAML run config
	days         []string      // Names of the days to simulate, one store each
	duration     int64         // Opening hours per day (clock units)
	tickSize     int64         // Clock units per tick
	minBatch     int           // Min arrivals per tick
	maxBatch     int           // Max arrivals per tick
	pace         time.Duration // Wall-clock delay between ticks
	closingDelay time.Duration // Wall-clock delay between closing announcement and evacuation
	seed         int64         // Seed for all random streams (0 = unseeded)

	// CLI flags for output
	logLevel     string // Log verbosity level
	quiet        bool   // Disable console narration
	traceLevel   string // Observation trace verbosity
	traceOutput  string // Path of the YAML trace file
	metricsAddr  string // Listen address for the Prometheus endpoint
	printMetrics bool   // Print end-of-day metrics per store

	// CLI flags for OpenTelemetry day spans
	otelExporter    string  // none, stdout or otlp
	otelEndpoint    string  // OTLP collector address
	otelSampleRatio float64 // Fraction of days traced
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "store-sim",
	Short: "Markov-chain simulator of customers moving through a supermarket",
}

// runCmd executes one store run per configured day
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the supermarket simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// deferred cleanup in runSimulation has run by the time it returns
		if err := runSimulation(cmd); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runSimulation runs every configured day and writes the requested outputs.
// Returned errors are final; cancellation by signal is not an error.
func runSimulation(cmd *cobra.Command) error {
	// Set up logging
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)

	if !trace.IsValidTraceLevel(traceLevel) {
		return fmt.Errorf("invalid trace level: %s", traceLevel)
	}

	cfg, err := resolveRunConfig(cmd)
	if err != nil {
		return fmt.Errorf("invalid run configuration: %w", err)
	}

	out := cmd.OutOrStdout()
	opts := runOptions{
		TraceLevel: trace.TraceLevel(traceLevel),
		Pacer:      sim.SleepPacer,
	}
	if !quiet {
		opts.Narrator = newNarrator(out)
	}
	if metricsAddr != "" {
		collector, err := telemetry.NewCollector(nil)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		opts.Collector = collector
		srv := serveMetrics(metricsAddr, collector)
		defer srv.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if otelExporter != "" && otelExporter != "none" {
		shutdown, err := telemetry.InitTracing(ctx, telemetry.TracingConfig{
			Exporter:    otelExporter,
			Endpoint:    otelEndpoint,
			SampleRatio: otelSampleRatio,
		})
		if err != nil {
			return fmt.Errorf("failed to initialise tracing: %w", err)
		}
		defer telemetry.ShutdownTracing(context.Background(), shutdown)
		opts.Tracer = telemetry.NewDayTracer(nil)
	}

	startTime := time.Now()
	result, err := runStores(ctx, cfg, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if printMetrics {
		for _, s := range result.Stores {
			s.Metrics.Print(out, s.Name)
		}
	}
	// end-of-day summary of every store, in run order
	for _, s := range result.Stores {
		fmt.Fprintln(out, s.String())
	}

	if traceOutput != "" {
		if err := writeTrace(traceOutput, result); err != nil {
			return fmt.Errorf("failed to write trace: %w", err)
		}
	}
	logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// newNarrator returns the console logger for customer narration, writing
// plain message lines to w. It always logs at info level, independently of --log.
func newNarrator(w io.Writer) *logrus.Logger {
	narrator := logrus.New()
	narrator.SetOutput(w)
	narrator.SetFormatter(sim.NarrationFormatter{})
	narrator.SetLevel(logrus.InfoLevel)
	return narrator
}

// serveMetrics exposes /metrics in the background for the lifetime of the run.
func serveMetrics(addr string, collector *telemetry.Collector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("metrics server on %s failed: %v", addr, err)
		}
	}()
	logrus.Infof("Serving Prometheus metrics on %s/metrics", addr)
	return srv
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags to fs.
func registerRunFlags(fs *pflag.FlagSet) {
	defaults := sim.DefaultRunConfig()

	fs.StringVar(&configPath, "config", "", "YAML run config; flags set explicitly override it")
	fs.StringSliceVar(&days, "days", defaults.Days, "Comma-separated day names; one independent store per day")
	fs.Int64Var(&duration, "duration", defaults.Duration, "Opening hours per day (clock units)")
	fs.Int64Var(&tickSize, "tick", defaults.TickSize, "Clock units per tick")
	fs.IntVar(&minBatch, "min-batch", defaults.MinBatch, "Minimum arrivals per tick")
	fs.IntVar(&maxBatch, "max-batch", defaults.MaxBatch, "Maximum arrivals per tick")
	fs.DurationVar(&pace, "pace", defaults.Pace, "Wall-clock delay between ticks (0 = as fast as possible)")
	fs.DurationVar(&closingDelay, "closing-delay", defaults.ClosingDelay, "Wall-clock delay between the closing announcement and evacuation")
	fs.Int64Var(&seed, "seed", 0, "Seed for all random streams (0 = unseeded)")

	fs.StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	fs.BoolVar(&quiet, "quiet", false, "Disable per-customer console narration")
	fs.StringVar(&traceLevel, "trace-level", "none", "Trace verbosity (none, departures, all)")
	fs.StringVar(&traceOutput, "trace-output", "", "Write the recorded trace as YAML to this path")
	fs.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run (e.g. :9090)")
	fs.BoolVar(&printMetrics, "metrics", false, "Print end-of-day metrics for every store")

	fs.StringVar(&otelExporter, "otel-exporter", "none", "OpenTelemetry span exporter for store days (none, stdout, otlp)")
	fs.StringVar(&otelEndpoint, "otel-endpoint", "", "OTLP gRPC collector address (default localhost:4317)")
	fs.Float64Var(&otelSampleRatio, "otel-sample-ratio", 1.0, "Fraction of store days to trace")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd.Flags())

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(modelCmd)
}
