// Package sim provides the Markov-chain customer engine for the store simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - location.go: the fixed aisle state space and the terminal checkout state
//   - model.go: the transition and initial-arrival weight tables
//   - customer.go: a single customer's random walk (active -> checked out)
//   - store.go: the population controller (admit, advance, report, close)
//   - run.go: the tick loop that drives one store from opening to closing
//
// # Architecture
//
// The engine is single-threaded and has no I/O of its own. Everything it
// observes is pushed through the Reporter interface; implementations live in
// this package (LogReporter, Metrics) and in sub-packages:
//   - sim/trace/: in-memory observation recording and summaries
//   - sim/telemetry/: Prometheus gauges and counters
//
// Randomness comes from a PartitionedRNG so that customer movement, arrival
// placement and batch sizing draw from isolated streams.
package sim
