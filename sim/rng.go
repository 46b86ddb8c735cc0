package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

// === SimulationKey ===

// SimulationKey seeds every random stream of one store run.
// Two runs with the same SimulationKey and configuration make identical
// transitions; unseeded runs use NewUnseededKey.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// NewUnseededKey derives a key from the wall clock, for ordinary stochastic runs.
func NewUnseededKey() SimulationKey {
	return SimulationKey(time.Now().UnixNano())
}

// String renders the key for logs.
func (k SimulationKey) String() string {
	return fmt.Sprintf("%d", int64(k))
}

// === Subsystem Constants ===

const (
	// SubsystemMovement drives Customer.Advance transitions.
	SubsystemMovement = "movement"

	// SubsystemArrival places new customers at their first aisle.
	SubsystemArrival = "arrival"

	// SubsystemBatch draws how many customers arrive each tick.
	SubsystemBatch = "batch"
)

// === PartitionedRNG ===

// PartitionedRNG provides isolated RNG instances per subsystem, so that e.g.
// changing the batch-size bounds does not perturb the movement stream.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
