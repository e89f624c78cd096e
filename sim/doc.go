// Package sim provides the race simulation core: two cars, a fixed number of
// laps and a leader recomputed after every lap.
//
// # Reading Guide
//
// Start with these files:
//   - car.go: RaceCar, the only mutable entity (accumulated lap time)
//   - effort.go: how a lap's effort is drawn from speed, acceleration and nerves
//   - race.go: the controller state machine (NotStarted → Racing → Finished)
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - AttributeSource: one bounded attribute draw in [1, 3]
//   - EffortSource: one lap's effort for one car
//   - Reporter: receives the start, per-lap and final reports
//
// Per-lap decision records live in sim/trace, which has no dependency on sim.
package sim
