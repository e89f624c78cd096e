// Package trace provides per-lap decision recording for post-race analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// CarLap captures one car's state after a lap.
type CarLap struct {
	DriverName   string `json:"driver"`
	Color        string `json:"color"`
	Effort       int    `json:"effort"`
	TotalLapTime int    `json:"total_lap_time"`
}

// LapRecord captures the leader decision made at the end of a lap.
type LapRecord struct {
	Lap         int      `json:"lap"`
	Leader      string   `json:"leader"`
	LeaderColor string   `json:"leader_color"`
	Margin      int      `json:"margin"` // runner-up total minus leader total
	Cars        []CarLap `json:"cars"`   // in entry order
}
