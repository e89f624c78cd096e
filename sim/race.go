package sim

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/race-sim/sim/trace"
)

// ErrRaceFinished is returned when stepping or running a completed race.
var ErrRaceFinished = errors.New("race already finished")

// RaceState is the controller's position in NotStarted → Racing → Finished.
type RaceState int

const (
	RaceNotStarted RaceState = iota
	RaceRacing
	RaceFinished
)

func (s RaceState) String() string {
	switch s {
	case RaceNotStarted:
		return "not-started"
	case RaceRacing:
		return "racing"
	case RaceFinished:
		return "finished"
	default:
		return fmt.Sprintf("RaceState(%d)", int(s))
	}
}

// Race drives two borrowed cars through a fixed number of laps.
// The caller owns the cars; Race mutates them only through RaceCar.Update.
// Not safe for concurrent use.
type Race struct {
	id           string
	numberOfLaps int
	lapsDone     int
	state        RaceState
	leader       Leader

	cars     [RaceCompetitors]*RaceCar
	efforts  EffortSource
	reporter Reporter
	trace    *trace.RaceTrace
	log      *logrus.Entry
}

// RaceOption customizes a Race at construction.
type RaceOption func(*Race)

// WithRaceID overrides the generated run id.
func WithRaceID(id string) RaceOption {
	return func(r *Race) { r.id = id }
}

// WithTrace records every lap into t.
func WithTrace(t *trace.RaceTrace) RaceOption {
	return func(r *Race) { r.trace = t }
}

// Result is what Run hands back once the race is over.
type Result struct {
	RaceID         string
	NumberOfLaps   int
	Leader         Leader
	Classification []Standing
}

// NewRace validates the lap count and the field before anything runs.
// cars must hold exactly two non-nil cars with distinct driver names; the
// first listed wins ties.
func NewRace(numberOfLaps int, cars []*RaceCar, efforts EffortSource, reporter Reporter, opts ...RaceOption) (*Race, error) {
	if err := validateLaps(numberOfLaps); err != nil {
		return nil, err
	}
	if len(cars) != RaceCompetitors {
		return nil, fmt.Errorf("new race: need %d cars, got %d: %w", RaceCompetitors, len(cars), ErrMissingCompetitor)
	}
	for i, c := range cars {
		if c == nil {
			return nil, fmt.Errorf("new race: car %d is nil: %w", i, ErrMissingCompetitor)
		}
	}
	if cars[0].DriverName() == cars[1].DriverName() {
		return nil, fmt.Errorf("new race: driver %q entered twice: %w", cars[0].DriverName(), ErrMissingCompetitor)
	}
	if efforts == nil {
		return nil, fmt.Errorf("%w: nil effort source", ErrInvalidConfig)
	}
	if reporter == nil {
		return nil, fmt.Errorf("%w: nil reporter", ErrInvalidConfig)
	}

	r := &Race{
		id:           uuid.NewString(),
		numberOfLaps: numberOfLaps,
		state:        RaceNotStarted,
		efforts:      efforts,
		reporter:     reporter,
	}
	copy(r.cars[:], cars)
	for _, opt := range opts {
		opt(r)
	}
	if r.trace != nil {
		r.trace.RaceID = r.id
	}
	r.log = logrus.WithField("race", r.id)
	return r, nil
}

func (r *Race) ID() string              { return r.id }
func (r *Race) NumberOfLaps() int       { return r.numberOfLaps }
func (r *Race) State() RaceState        { return r.state }
func (r *Race) LapsCompleted() int      { return r.lapsDone }
func (r *Race) Leader() Leader          { return r.leader }
func (r *Race) Trace() *trace.RaceTrace { return r.trace }

// Cars returns the field in entry order. The slice is a copy; replacing its
// entries does not change the race.
func (r *Race) Cars() []*RaceCar {
	out := make([]*RaceCar, len(r.cars))
	copy(out, r.cars[:])
	return out
}

// CurrentLap is 1 before the race starts and the last completed lap
// afterwards, so it ends equal to NumberOfLaps.
func (r *Race) CurrentLap() int {
	return max(r.lapsDone, 1)
}

// Step runs one lap: both cars take a fresh effort in entry order, then the
// leader is recomputed and reported. The last lap also finishes the race.
func (r *Race) Step() error {
	if r.state == RaceFinished {
		return ErrRaceFinished
	}
	if r.state == RaceNotStarted {
		r.start()
	}

	lap := r.lapsDone + 1
	efforts := [RaceCompetitors]int{}
	for i, c := range r.cars {
		efforts[i] = r.efforts.NextEffort()
		c.Update(efforts[i])
	}

	leader, err := RecomputeLeader(r.cars[0], r.cars[1])
	if err != nil {
		return fmt.Errorf("lap %d: %w", lap, err)
	}
	r.lapsDone = lap
	r.leader = leader

	r.recordLap(lap, efforts)
	r.log.Debugf("[lap %02d] leader=%s totals=%d/%d", lap, leader.DriverName,
		r.cars[0].TotalLapTime(), r.cars[1].TotalLapTime())
	r.reporter.LapCompleted(LapReport{Lap: lap, Leader: leader})

	if lap == r.numberOfLaps {
		return r.finish()
	}
	return nil
}

// Run steps until the race is finished and returns the final result.
func (r *Race) Run() (*Result, error) {
	if r.state == RaceFinished {
		return nil, ErrRaceFinished
	}
	for r.state != RaceFinished {
		if err := r.Step(); err != nil {
			return nil, err
		}
	}
	return r.result()
}

func (r *Race) start() {
	grid := make([]Leader, len(r.cars))
	for i, c := range r.cars {
		grid[i] = LeaderOf(c)
	}
	r.state = RaceRacing
	r.log.Infof("Race started: %d laps, %s vs %s", r.numberOfLaps, r.cars[0], r.cars[1])
	r.reporter.RaceStarting(StartReport{RaceID: r.id, NumberOfLaps: r.numberOfLaps, Grid: grid})
}

func (r *Race) finish() error {
	res, err := r.result()
	if err != nil {
		return err
	}
	r.state = RaceFinished
	r.log.Infof("Race finished: %s wins after %d laps", res.Leader.DriverName, res.NumberOfLaps)
	r.reporter.RaceFinished(FinalReport(*res))
	return nil
}

func (r *Race) result() (*Result, error) {
	standings, err := Classify(r.cars[:])
	if err != nil {
		return nil, err
	}
	return &Result{
		RaceID:         r.id,
		NumberOfLaps:   r.numberOfLaps,
		Leader:         r.leader,
		Classification: standings,
	}, nil
}

func (r *Race) recordLap(lap int, efforts [RaceCompetitors]int) {
	if r.trace == nil {
		return
	}
	cars := make([]trace.CarLap, len(r.cars))
	best, runnerUp := r.cars[0].TotalLapTime(), r.cars[1].TotalLapTime()
	if runnerUp < best {
		best, runnerUp = runnerUp, best
	}
	for i, c := range r.cars {
		cars[i] = trace.CarLap{
			DriverName:   c.DriverName(),
			Color:        c.Color(),
			Effort:       efforts[i],
			TotalLapTime: c.TotalLapTime(),
		}
	}
	r.trace.RecordLap(trace.LapRecord{
		Lap:         lap,
		Leader:      r.leader.DriverName,
		LeaderColor: r.leader.Color,
		Margin:      runnerUp - best,
		Cars:        cars,
	})
}
