package sim

import "fmt"

// RaceCar is one competitor. Identity is fixed at construction; the total
// only grows, one Update per lap. A new race needs new cars.
type RaceCar struct {
	driverName   string
	color        string
	totalLapTime int
	lapTimes     []int // effort applied per lap, in lap order
}

// NewRaceCar creates a car with a zero total.
func NewRaceCar(driverName, color string) *RaceCar {
	return &RaceCar{
		driverName: driverName,
		color:      color,
		lapTimes:   make([]int, 0),
	}
}

// Update adds one lap's effort to the total.
// Panics on a negative effort, which would break monotonic totals.
func (c *RaceCar) Update(effort int) {
	if effort < 0 {
		panic(fmt.Sprintf("RaceCar.Update(%s): negative effort %d", c.driverName, effort))
	}
	c.totalLapTime += effort
	c.lapTimes = append(c.lapTimes, effort)
}

func (c *RaceCar) DriverName() string { return c.driverName }
func (c *RaceCar) Color() string      { return c.color }
func (c *RaceCar) TotalLapTime() int  { return c.totalLapTime }

// LapTimes returns a copy of the per-lap efforts applied so far.
func (c *RaceCar) LapTimes() []int {
	out := make([]int, len(c.lapTimes))
	copy(out, c.lapTimes)
	return out
}

// LapsCompleted is the number of updates applied.
func (c *RaceCar) LapsCompleted() int {
	return len(c.lapTimes)
}

// String formats the car as "George (yellow)".
func (c *RaceCar) String() string {
	return fmt.Sprintf("%s (%s)", c.driverName, c.color)
}
