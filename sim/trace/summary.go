package trace

// TraceSummary aggregates statistics from a RaceTrace.
type TraceSummary struct {
	TotalLaps   int            `json:"total_laps"`
	LeadChanges int            `json:"lead_changes"`
	LapsLed     map[string]int `json:"laps_led"` // driver name → laps finished in first place
	MaxMargin   int            `json:"max_margin"`
	FinalLeader string         `json:"final_leader"`
}

// Summarize computes aggregate statistics from a RaceTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RaceTrace) *TraceSummary {
	summary := &TraceSummary{
		LapsLed: make(map[string]int),
	}
	if rt == nil || len(rt.Laps) == 0 {
		return summary
	}

	summary.TotalLaps = len(rt.Laps)
	previous := ""
	for i, lap := range rt.Laps {
		summary.LapsLed[lap.Leader]++
		if i > 0 && lap.Leader != previous {
			summary.LeadChanges++
		}
		if lap.Margin > summary.MaxMargin {
			summary.MaxMargin = lap.Margin
		}
		previous = lap.Leader
	}
	summary.FinalLeader = previous

	return summary
}
