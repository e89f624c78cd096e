package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

// === SimulationKey ===

// SimulationKey identifies a reproducible race. Two races with the same
// SimulationKey, field and lap count MUST produce identical lap times.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// NewClockSimulationKey derives a key from the wall clock. Used when no seed
// is given, so every process run sees a different race.
func NewClockSimulationKey() SimulationKey {
	return SimulationKey(time.Now().UnixNano())
}

// === Subsystems ===

// SubsystemCar returns the subsystem name for the car in grid slot N.
// Each car draws its lap efforts from its own stream, so one car's draws
// never shift the other's.
func SubsystemCar(slot int) string {
	return fmt.Sprintf("car_%d", slot)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName), so --seed N
// replays the same race.
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

	derivedSeed := int64(p.key) ^ fnv1a64(name)
	rng := rand.New(rand.NewSource(derivedSeed))
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
