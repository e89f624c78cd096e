package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for race configurations that cannot be run.
var ErrInvalidConfig = errors.New("invalid race configuration")

// Defaults for a race started without a config file.
const (
	DefaultNumberOfLaps = 5
	// RaceCompetitors is the field size; the race is always a duel.
	RaceCompetitors = 2
)

// CompetitorConfig describes one car on the grid.
type CompetitorConfig struct {
	DriverName string `yaml:"driver"`
	Color      string `yaml:"color"`
}

// RaceConfig is the full race.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type RaceConfig struct {
	NumberOfLaps int                `yaml:"laps"`
	Competitors  []CompetitorConfig `yaml:"competitors"`
	Seed         *int64             `yaml:"seed"` // nil = seed from the clock
}

// DefaultRaceConfig returns George in the yellow car against Cosmo in the
// orange car over five laps.
func DefaultRaceConfig() RaceConfig {
	return RaceConfig{
		NumberOfLaps: DefaultNumberOfLaps,
		Competitors: []CompetitorConfig{
			{DriverName: "George", Color: "yellow"},
			{DriverName: "Cosmo", Color: "orange"},
		},
	}
}

// LoadRaceConfig reads a YAML race file on top of DefaultRaceConfig.
// Unknown keys are errors. An empty file yields the defaults.
func LoadRaceConfig(path string) (*RaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading race config: %w", err)
	}

	cfg := DefaultRaceConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing race config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks lap count and grid.
func (c RaceConfig) Validate() error {
	if err := validateLaps(c.NumberOfLaps); err != nil {
		return err
	}
	if len(c.Competitors) != RaceCompetitors {
		return fmt.Errorf("%w: need exactly %d competitors, got %d", ErrInvalidConfig, RaceCompetitors, len(c.Competitors))
	}
	seen := make(map[string]bool, len(c.Competitors))
	for i, comp := range c.Competitors {
		if comp.DriverName == "" {
			return fmt.Errorf("%w: competitor %d has no driver", ErrInvalidConfig, i)
		}
		if comp.Color == "" {
			return fmt.Errorf("%w: competitor %q has no car color", ErrInvalidConfig, comp.DriverName)
		}
		if seen[comp.DriverName] {
			return fmt.Errorf("%w: duplicate driver %q", ErrInvalidConfig, comp.DriverName)
		}
		seen[comp.DriverName] = true
	}
	return nil
}

// NewCars builds fresh cars in grid order.
func (c RaceConfig) NewCars() []*RaceCar {
	cars := make([]*RaceCar, len(c.Competitors))
	for i, comp := range c.Competitors {
		cars[i] = NewRaceCar(comp.DriverName, comp.Color)
	}
	return cars
}

func validateLaps(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: number of laps must be positive, got %d", ErrInvalidConfig, n)
	}
	return nil
}
