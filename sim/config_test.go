package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "race.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultRaceConfig_GeorgeVersusCosmo(t *testing.T) {
	cfg := DefaultRaceConfig()

	assert.Equal(t, 5, cfg.NumberOfLaps)
	assert.Equal(t, []CompetitorConfig{
		{DriverName: "George", Color: "yellow"},
		{DriverName: "Cosmo", Color: "orange"},
	}, cfg.Competitors)
	assert.Nil(t, cfg.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRaceConfig_ValidYAML(t *testing.T) {
	path := writeTempYAML(t, `
laps: 8
seed: 42
competitors:
  - driver: Elaine
    color: red
  - driver: Kramer
    color: blue
`)
	cfg, err := LoadRaceConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.NumberOfLaps)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, "Elaine", cfg.Competitors[0].DriverName)
	assert.Equal(t, "blue", cfg.Competitors[1].Color)
}

func TestLoadRaceConfig_PartialYAML_KeepsDefaults(t *testing.T) {
	// GIVEN a file that only changes the lap count
	cfg, err := LoadRaceConfig(writeTempYAML(t, "laps: 3\n"))
	require.NoError(t, err)

	// THEN the default grid survives
	assert.Equal(t, 3, cfg.NumberOfLaps)
	assert.Equal(t, DefaultRaceConfig().Competitors, cfg.Competitors)
}

func TestLoadRaceConfig_EmptyFile_Defaults(t *testing.T) {
	cfg, err := LoadRaceConfig(writeTempYAML(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultRaceConfig(), *cfg)
}

func TestLoadRaceConfig_UnknownField_Rejected(t *testing.T) {
	// typos must cause errors
	_, err := LoadRaceConfig(writeTempYAML(t, "lapz: 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing race config")
}

func TestLoadRaceConfig_ZeroLaps_ConfigError(t *testing.T) {
	_, err := LoadRaceConfig(writeTempYAML(t, "laps: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadRaceConfig_MissingFile(t *testing.T) {
	_, err := LoadRaceConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading race config")
}

func TestRaceConfig_Validate(t *testing.T) {
	george := CompetitorConfig{DriverName: "George", Color: "yellow"}
	cosmo := CompetitorConfig{DriverName: "Cosmo", Color: "orange"}
	tests := []struct {
		name    string
		cfg     RaceConfig
		wantErr bool
	}{
		{"defaults", DefaultRaceConfig(), false},
		{"one lap", RaceConfig{NumberOfLaps: 1, Competitors: []CompetitorConfig{george, cosmo}}, false},
		{"zero laps", RaceConfig{NumberOfLaps: 0, Competitors: []CompetitorConfig{george, cosmo}}, true},
		{"negative laps", RaceConfig{NumberOfLaps: -3, Competitors: []CompetitorConfig{george, cosmo}}, true},
		{"single competitor", RaceConfig{NumberOfLaps: 5, Competitors: []CompetitorConfig{george}}, true},
		{"three competitors", RaceConfig{NumberOfLaps: 5, Competitors: []CompetitorConfig{george, cosmo, {DriverName: "Jerry", Color: "green"}}}, true},
		{"missing driver", RaceConfig{NumberOfLaps: 5, Competitors: []CompetitorConfig{george, {Color: "red"}}}, true},
		{"missing color", RaceConfig{NumberOfLaps: 5, Competitors: []CompetitorConfig{george, {DriverName: "Jerry"}}}, true},
		{"duplicate driver", RaceConfig{NumberOfLaps: 5, Competitors: []CompetitorConfig{george, george}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRaceConfig_NewCars_FreshInGridOrder(t *testing.T) {
	cfg := DefaultRaceConfig()

	cars := cfg.NewCars()
	require.Len(t, cars, 2)
	assert.Equal(t, "George", cars[0].DriverName())
	assert.Equal(t, "orange", cars[1].Color())
	assert.Zero(t, cars[0].TotalLapTime())

	// each call builds new entities
	again := cfg.NewCars()
	assert.NotSame(t, cars[0], again[0])
}
