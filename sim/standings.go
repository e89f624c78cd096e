package sim

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingCompetitor is returned when a car reference is nil or the field
// does not have the expected size.
var ErrMissingCompetitor = errors.New("missing competitor")

// Leader identifies the car currently in first place.
type Leader struct {
	DriverName string
	Color      string
}

// LeaderOf snapshots c's identity.
func LeaderOf(c *RaceCar) Leader {
	return Leader{DriverName: c.DriverName(), Color: c.Color()}
}

// IsZero reports whether no leader has been recorded yet.
func (l Leader) IsZero() bool {
	return l.DriverName == "" && l.Color == ""
}

// RecomputeLeader returns a when a's total is <= b's, otherwise b.
// Ties go to a, the first-listed competitor. Neither car is modified.
func RecomputeLeader(a, b *RaceCar) (Leader, error) {
	if a == nil || b == nil {
		return Leader{}, fmt.Errorf("recompute leader: %w", ErrMissingCompetitor)
	}
	if a.TotalLapTime() <= b.TotalLapTime() {
		return LeaderOf(a), nil
	}
	return LeaderOf(b), nil
}

// FastestOf returns the car with the minimum total lap time.
// Ties are broken by first occurrence in cars (lowest index).
func FastestOf(cars []*RaceCar) (*RaceCar, error) {
	if len(cars) == 0 {
		return nil, fmt.Errorf("fastest of empty field: %w", ErrMissingCompetitor)
	}
	for i, c := range cars {
		if c == nil {
			return nil, fmt.Errorf("fastest of: car %d is nil: %w", i, ErrMissingCompetitor)
		}
	}

	best := cars[0]
	for i := 1; i < len(cars); i++ {
		if cars[i].TotalLapTime() < best.TotalLapTime() {
			best = cars[i]
		}
	}
	return best, nil
}

// Standing is one row of a classification.
type Standing struct {
	Position     int // 1-based
	DriverName   string
	Color        string
	TotalLapTime int
	Gap          int // behind the leader; 0 for the leader
}

// Classify orders cars by total lap time. Equal totals keep entry order,
// so position 1 always agrees with FastestOf.
func Classify(cars []*RaceCar) ([]Standing, error) {
	leader, err := FastestOf(cars)
	if err != nil {
		return nil, err
	}

	ordered := make([]*RaceCar, len(cars))
	copy(ordered, cars)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TotalLapTime() < ordered[j].TotalLapTime()
	})

	standings := make([]Standing, len(ordered))
	for i, c := range ordered {
		standings[i] = Standing{
			Position:     i + 1,
			DriverName:   c.DriverName(),
			Color:        c.Color(),
			TotalLapTime: c.TotalLapTime(),
			Gap:          c.TotalLapTime() - leader.TotalLapTime(),
		}
	}
	return standings, nil
}
