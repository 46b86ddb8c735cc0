// Package telemetry exports store runs as Prometheus metrics.
package telemetry

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inference-sim/store-sim/sim"
)

// Collector bundles the Prometheus metrics of one or more store runs.
type Collector struct {
	gatherer prometheus.Gatherer

	ActiveCustomers *prometheus.GaugeVec   // store, aisle
	Admitted        *prometheus.CounterVec // store
	Departures      *prometheus.CounterVec // store, kind
	Ticks           *prometheus.CounterVec // store
	Closings        *prometheus.CounterVec // store
}

// NewCollector registers the store metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	active, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "store_active_customers",
		Help: "Customers currently in the store, labeled by store and aisle.",
	}, []string{"store", "aisle"}), "store_active_customers")
	if err != nil {
		return nil, err
	}
	admitted, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_customers_admitted_total",
		Help: "Customers admitted, labeled by store.",
	}, []string{"store"}), "store_customers_admitted_total")
	if err != nil {
		return nil, err
	}
	departures, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_departures_total",
		Help: "Customers that reached checkout, labeled by store and kind (departure or evacuation).",
	}, []string{"store", "kind"}), "store_departures_total")
	if err != nil {
		return nil, err
	}
	ticks, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_ticks_total",
		Help: "Simulation ticks executed, labeled by store.",
	}, []string{"store"}), "store_ticks_total")
	if err != nil {
		return nil, err
	}
	closings, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_closings_total",
		Help: "Store closings, labeled by store.",
	}, []string{"store"}), "store_closings_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		ActiveCustomers: active,
		Admitted:        admitted,
		Departures:      departures,
		Ticks:           ticks,
		Closings:        closings,
	}, nil
}

// Handler exposes the collector's metrics over HTTP.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ForStore returns a sim.Reporter that labels everything with store.
func (c *Collector) ForStore(store string) sim.Reporter {
	return &storeReporter{c: c, store: store}
}

type storeReporter struct {
	c     *Collector
	store string
}

func (r *storeReporter) Observe(obs sim.Observation) {
	if obs.Kind == sim.KindPosition {
		return
	}
	r.c.Departures.WithLabelValues(r.store, string(obs.Kind)).Inc()
}

func (r *storeReporter) TickEnd(snap sim.TickSnapshot) {
	r.c.Ticks.WithLabelValues(r.store).Inc()
	r.c.Admitted.WithLabelValues(r.store).Add(float64(snap.Admitted))
	for aisle, n := range snap.Active {
		r.c.ActiveCustomers.WithLabelValues(r.store, string(aisle)).Set(float64(n))
	}
}

func (r *storeReporter) Announce(sim.Stamp, string) {}

func (r *storeReporter) Closed(summary sim.ClosingSummary) {
	r.c.Closings.WithLabelValues(r.store).Inc()
	for _, aisle := range sim.AllLocations() {
		if aisle.IsTerminal() {
			continue
		}
		r.c.ActiveCustomers.WithLabelValues(r.store, string(aisle)).Set(0)
	}
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
