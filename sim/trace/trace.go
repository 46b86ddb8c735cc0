package trace

// TraceLevel controls the verbosity of observation tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDepartures records departures, evacuations and closings only.
	TraceLevelDepartures TraceLevel = "departures"
	// TraceLevelAll additionally records every per-tick position and snapshot.
	TraceLevelAll TraceLevel = "all"
)

// Movement kinds, mirroring the engine's observation kinds.
const (
	KindPosition   = "position"
	KindDeparture  = "departure"
	KindEvacuation = "evacuation"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelDepartures: true,
	TraceLevelAll:        true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects observation records during a store run.
type SimulationTrace struct {
	Config    TraceConfig      `yaml:"-"`
	Movements []MovementRecord `yaml:"movements"`
	Ticks     []TickRecord     `yaml:"ticks"`
	Closings  []ClosingRecord  `yaml:"closings"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		Movements: make([]MovementRecord, 0),
		Ticks:     make([]TickRecord, 0),
		Closings:  make([]ClosingRecord, 0),
	}
}

// Enabled reports whether anything is recorded at all.
func (st *SimulationTrace) Enabled() bool {
	return st.Config.Level != TraceLevelNone && st.Config.Level != ""
}

// RecordMovement appends a movement record. Position records are kept only
// at TraceLevelAll.
func (st *SimulationTrace) RecordMovement(record MovementRecord) {
	if !st.Enabled() {
		return
	}
	if record.Kind == KindPosition && st.Config.Level != TraceLevelAll {
		return
	}
	st.Movements = append(st.Movements, record)
}

// RecordTick appends a tick snapshot record (TraceLevelAll only).
func (st *SimulationTrace) RecordTick(record TickRecord) {
	if st.Config.Level != TraceLevelAll {
		return
	}
	st.Ticks = append(st.Ticks, record)
}

// RecordClosing appends a closing record.
func (st *SimulationTrace) RecordClosing(record ClosingRecord) {
	if !st.Enabled() {
		return
	}
	st.Closings = append(st.Closings, record)
}
