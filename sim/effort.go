package sim

import (
	"fmt"
	"math/rand"
)

// Attribute draws are inclusive on both ends.
const (
	MinAttribute = 1
	MaxAttribute = 3
)

// AttributeSource supplies one bounded driver attribute per call.
// Implementations MUST return a value in [MinAttribute, MaxAttribute].
type AttributeSource interface {
	NextAttribute() int
}

// RandAttributeSource draws attributes uniformly from a *rand.Rand.
// Thread-safety: NOT thread-safe, same as the underlying *rand.Rand.
type RandAttributeSource struct {
	rng *rand.Rand
}

// NewRandAttributeSource wraps rng. Typically rng comes from
// PartitionedRNG.ForSubsystem(SubsystemCar(slot)).
func NewRandAttributeSource(rng *rand.Rand) *RandAttributeSource {
	return &RandAttributeSource{rng: rng}
}

// NextAttribute implements AttributeSource.
func (s *RandAttributeSource) NextAttribute() int {
	return MinAttribute + s.rng.Intn(MaxAttribute-MinAttribute+1)
}

// EffortDraw is the breakdown of one lap's effort.
//
// Postcondition: Total() == Speed + Acceleration + Nerves.
type EffortDraw struct {
	Speed        int
	Acceleration int
	Nerves       int
}

// Total returns the lap time contribution, in [3, 9] for valid draws.
func (d EffortDraw) Total() int {
	return d.Speed + d.Acceleration + d.Nerves
}

// EffortSource yields the time a car adds to its total in one lap.
type EffortSource interface {
	NextEffort() int
}

// EffortFunc adapts a plain function to EffortSource.
type EffortFunc func() int

// NextEffort implements EffortSource.
func (f EffortFunc) NextEffort() int { return f() }

// RoundRobinEfforts serves one source per car, in entry order. Race draws
// car A then car B every lap, so source i always feeds the car in slot i.
type RoundRobinEfforts struct {
	sources []EffortSource
	next    int
}

// NewRoundRobinEfforts panics if sources is empty or holds a nil source.
func NewRoundRobinEfforts(sources ...EffortSource) *RoundRobinEfforts {
	if len(sources) == 0 {
		panic("NewRoundRobinEfforts: no sources")
	}
	for i, s := range sources {
		if s == nil {
			panic(fmt.Sprintf("NewRoundRobinEfforts: source %d is nil", i))
		}
	}
	return &RoundRobinEfforts{sources: sources}
}

// NextEffort implements EffortSource.
func (e *RoundRobinEfforts) NextEffort() int {
	v := e.sources[e.next].NextEffort()
	e.next = (e.next + 1) % len(e.sources)
	return v
}

// LapTimeSource turns three attribute draws into a lap effort.
type LapTimeSource struct {
	attrs AttributeSource
}

// NewLapTimeSource panics if attrs is nil.
func NewLapTimeSource(attrs AttributeSource) *LapTimeSource {
	if attrs == nil {
		panic("NewLapTimeSource: nil AttributeSource")
	}
	return &LapTimeSource{attrs: attrs}
}

// Draw takes speed, acceleration and nerves, in that order.
func (s *LapTimeSource) Draw() EffortDraw {
	return EffortDraw{
		Speed:        s.attribute("speed"),
		Acceleration: s.attribute("acceleration"),
		Nerves:       s.attribute("nerves"),
	}
}

// NextEffort implements EffortSource.
func (s *LapTimeSource) NextEffort() int {
	return s.Draw().Total()
}

func (s *LapTimeSource) attribute(name string) int {
	v := s.attrs.NextAttribute()
	if v < MinAttribute || v > MaxAttribute {
		panic(fmt.Sprintf("LapTimeSource: %s draw %d outside [%d, %d]", name, v, MinAttribute, MaxAttribute))
	}
	return v
}
