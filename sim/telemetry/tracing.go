package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/inference-sim/store-sim/sim"
)

const tracerName = "github.com/inference-sim/store-sim/sim/telemetry"

// TracingConfig governs how store-day spans are exported.
type TracingConfig struct {
	Exporter    string // "" or none (disabled), stdout, otlp
	Endpoint    string // used when Exporter == otlp
	ServiceName string
	SampleRatio float64
	Output      io.Writer // stdout exporter target (nil = os.Stdout)
}

// InitTracing installs a global tracer provider for cfg and returns a
// shutdown function that flushes pending spans. A disabled config installs
// the noop provider.
func InitTracing(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	exporter := strings.ToLower(cfg.Exporter)
	if exporter == "" || exporter == "none" {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return func(context.Context) error { return nil }, nil
	}

	exp, err := exporterFromConfig(ctx, exporter, cfg)
	if err != nil {
		return nil, err
	}

	service := cfg.ServiceName
	if service == "" {
		service = "store-sim"
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", service)),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	logrus.Infof("Tracing enabled (exporter=%s, service=%s, ratio=%.2f)", exporter, service, cfg.SampleRatio)
	return tp.Shutdown, nil
}

func exporterFromConfig(ctx context.Context, exporter string, cfg TracingConfig) (sdktrace.SpanExporter, error) {
	switch exporter {
	case "stdout":
		w := cfg.Output
		if w == nil {
			w = os.Stdout
		}
		return stdouttrace.New(
			stdouttrace.WithWriter(w),
			stdouttrace.WithPrettyPrint(),
			stdouttrace.WithoutTimestamps(),
		)
	case "otlp":
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		client := otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
		return otlptrace.New(ctx, client)
	default:
		return nil, fmt.Errorf("unsupported tracing exporter: %s", cfg.Exporter)
	}
}

// ShutdownTracing flushes spans with a bounded timeout. Errors are logged.
func ShutdownTracing(ctx context.Context, shutdown func(context.Context) error) {
	if shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logrus.Warnf("tracing shutdown failed: %v", err)
	}
}

// DayTracer opens one span per store day.
type DayTracer struct {
	tracer trace.Tracer
}

// NewDayTracer creates a DayTracer on tp, or on the global provider when nil.
func NewDayTracer(tp trace.TracerProvider) *DayTracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &DayTracer{tracer: tp.Tracer(tracerName)}
}

// StartDay starts the span of one store day. The returned reporter records
// ticks, checkouts and the closing announcement as span events; the caller
// ends the span with Finish.
func (t *DayTracer) StartDay(ctx context.Context, store string) (context.Context, *DaySpan) {
	ctx, span := t.tracer.Start(ctx, "store.day", trace.WithAttributes(attribute.String("store.name", store)))
	return ctx, &DaySpan{span: span}
}

// DaySpan is the sim.Reporter side of a store-day span.
type DaySpan struct {
	span trace.Span
}

// Finish ends the span, marking it failed when err is non-nil.
func (d *DaySpan) Finish(err error) {
	if err != nil {
		d.span.RecordError(err)
		d.span.SetStatus(codes.Error, err.Error())
	}
	d.span.End()
}

func (d *DaySpan) Observe(obs sim.Observation) {
	if obs.Kind == sim.KindPosition {
		return
	}
	d.span.AddEvent("checkout", trace.WithAttributes(
		attribute.Int("customer.id", obs.CustomerID),
		attribute.String("checkout.kind", string(obs.Kind)),
		attribute.Int64("sim.tick", obs.Tick),
	))
}

func (d *DaySpan) TickEnd(snap sim.TickSnapshot) {
	active := 0
	for _, n := range snap.Active {
		active += n
	}
	d.span.AddEvent("tick", trace.WithAttributes(
		attribute.Int64("sim.tick", snap.Tick),
		attribute.Int("store.admitted", snap.Admitted),
		attribute.Int("store.active", active),
	))
}

func (d *DaySpan) Announce(at sim.Stamp, message string) {
	d.span.AddEvent("announcement", trace.WithAttributes(
		attribute.Int64("sim.tick", at.Tick),
		attribute.String("message", message),
	))
}

func (d *DaySpan) Closed(summary sim.ClosingSummary) {
	d.span.SetAttributes(
		attribute.String("store.run_id", summary.RunID),
		attribute.Int("store.total_customers", summary.TotalCustomers),
		attribute.Int("store.evacuated", summary.Evacuated),
		attribute.Int64("sim.closing_tick", summary.Tick),
	)
}
