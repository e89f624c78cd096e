package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/race-sim/sim"
	"github.com/inference-sim/race-sim/sim/trace"
)

var (
	// CLI flags; the race needs none of them
	seed           int64  // Seed for lap effort draws (default: clock)
	numberOfLaps   int    // Laps to race
	raceConfigPath string // YAML race file
	logLevel       string // Log verbosity level
	colorOutput    bool   // Print driver names in their car color
	classification bool   // Print the final classification table
	traceLevel     string // Trace verbosity: none, laps
	traceOutPath   string // Where to write the JSON trace
)

// rootCmd runs one race when invoked with no arguments
var rootCmd = &cobra.Command{
	Use:   "race-sim",
	Short: "Two-car race simulator",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		opts, err := resolveRunOptions(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runRace(opts, os.Stdout); err != nil {
			logrus.Fatalf("Race failed: %v", err)
		}
	},
}

// runOptions is everything runRace needs, already resolved from flags and file.
type runOptions struct {
	Config         sim.RaceConfig
	Key            sim.SimulationKey
	Colorize       bool
	Classification bool
	Trace          trace.TraceConfig
	TraceOut       string
}

// resolveRunOptions merges defaults, the optional race file and flags.
// Flags override the file only when explicitly set.
func resolveRunOptions(cmd *cobra.Command) (runOptions, error) {
	cfg := sim.DefaultRaceConfig()
	if raceConfigPath != "" {
		loaded, err := sim.LoadRaceConfig(raceConfigPath)
		if err != nil {
			return runOptions{}, err
		}
		cfg = *loaded
	}
	if cmd.Flags().Changed("laps") {
		cfg.NumberOfLaps = numberOfLaps
	}
	if err := cfg.Validate(); err != nil {
		return runOptions{}, err
	}

	key := sim.NewClockSimulationKey()
	switch {
	case cmd.Flags().Changed("seed"):
		key = sim.NewSimulationKey(seed)
	case cfg.Seed != nil:
		key = sim.NewSimulationKey(*cfg.Seed)
	}

	if !trace.IsValidTraceLevel(traceLevel) {
		return runOptions{}, fmt.Errorf("unknown trace level %q (valid: none, laps)", traceLevel)
	}
	tc := trace.TraceConfig{Level: trace.TraceLevel(traceLevel)}
	if traceOutPath != "" && !tc.Enabled() {
		tc.Level = trace.TraceLevelLaps
	}

	return runOptions{
		Config:         cfg,
		Key:            key,
		Colorize:       colorOutput,
		Classification: classification,
		Trace:          tc,
		TraceOut:       traceOutPath,
	}, nil
}

// runRace builds the field, races it and writes the commentary to out.
// Every car draws from its own RNG subsystem of opts.Key.
func runRace(opts runOptions, out io.Writer) error {
	rng := sim.NewPartitionedRNG(opts.Key)
	cars := opts.Config.NewCars()
	sources := make([]sim.EffortSource, len(cars))
	for i := range cars {
		sources[i] = sim.NewLapTimeSource(sim.NewRandAttributeSource(rng.ForSubsystem(sim.SubsystemCar(i))))
	}

	var reporterOpts []sim.TextReporterOption
	if opts.Classification {
		reporterOpts = append(reporterOpts, sim.WithClassification())
	}
	reporter := sim.NewTextReporter(out, opts.Colorize, reporterOpts...)

	var raceOpts []sim.RaceOption
	if opts.Trace.Enabled() {
		raceOpts = append(raceOpts, sim.WithTrace(trace.NewRaceTrace(opts.Trace)))
	}

	race, err := sim.NewRace(opts.Config.NumberOfLaps, cars, sim.NewRoundRobinEfforts(sources...), reporter, raceOpts...)
	if err != nil {
		return err
	}
	logrus.Infof("Starting race %s: %d laps, seed %d", race.ID(), race.NumberOfLaps(), int64(rng.Key()))

	result, err := race.Run()
	if err != nil {
		return err
	}
	if err := reporter.Err(); err != nil {
		return err
	}

	if rt := race.Trace(); rt != nil {
		summary := trace.Summarize(rt)
		logrus.Infof("Trace: %d laps, %d lead changes, laps led %v", summary.TotalLaps, summary.LeadChanges, summary.LapsLed)
		if opts.TraceOut != "" {
			if err := rt.WriteJSON(opts.TraceOut); err != nil {
				return err
			}
		}
	}

	logrus.Infof("Race complete. Winner: %s", result.Leader.DriverName)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags
func init() {
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for lap time draws (default: seeded from the clock)")
	rootCmd.Flags().IntVar(&numberOfLaps, "laps", sim.DefaultNumberOfLaps, "Number of laps")
	rootCmd.Flags().StringVar(&raceConfigPath, "config", "", "Path to a YAML race file (laps, seed, competitors)")
	rootCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.Flags().BoolVar(&colorOutput, "color", true, "Print driver names in their car color (disabled when stdout is not a terminal)")
	rootCmd.Flags().BoolVar(&classification, "classification", false, "Print the final classification before the congratulation")
	rootCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, laps)")
	rootCmd.Flags().StringVar(&traceOutPath, "trace-out", "", "Write the lap trace as JSON to this path (implies --trace laps)")
}
