package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// TraceLevel controls the verbosity of race tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelLaps captures the leader decision and car totals of every lap.
	TraceLevelLaps TraceLevel = "laps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone: true,
	TraceLevelLaps: true,
	"":             true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelLaps
}

// RaceTrace collects lap records during a race.
type RaceTrace struct {
	Config TraceConfig `json:"-"`
	RaceID string      `json:"race_id"`
	Laps   []LapRecord `json:"laps"`
}

// NewRaceTrace creates a RaceTrace ready for recording.
func NewRaceTrace(config TraceConfig) *RaceTrace {
	return &RaceTrace{
		Config: config,
		Laps:   make([]LapRecord, 0),
	}
}

// RecordLap appends a lap record. No-op when tracing is disabled.
func (rt *RaceTrace) RecordLap(record LapRecord) {
	if !rt.Config.Enabled() {
		return
	}
	rt.Laps = append(rt.Laps, record)
}

// WriteJSON writes the trace and its summary to path.
func (rt *RaceTrace) WriteJSON(path string) error {
	out := struct {
		*RaceTrace
		Summary *TraceSummary `json:"summary"`
	}{rt, Summarize(rt)}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding race trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing race trace: %w", err)
	}
	return nil
}
