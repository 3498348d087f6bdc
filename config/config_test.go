package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultEligibleTeams, cfg.Data.EligibleTeams)
	assert.Equal(t, DefaultCutoffDate, cfg.Data.CutoffDate)
	assert.Equal(t, 180.0, cfg.Features.HalfLifeDays)
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
data:
  raw_dir: /data/raw
  eligible_teams: [Australia, England]
  cutoff_date: "2023-06-01"
  city_country:
    Sydney: Australia
features:
  half_life_days: 90
storage:
  db_path: /tmp/odi.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/raw", cfg.Data.RawDir)
	assert.Equal(t, []string{"Australia", "England"}, cfg.Data.EligibleTeams)
	assert.Equal(t, 90.0, cfg.Features.HalfLifeDays)
	assert.Equal(t, "/tmp/odi.db", cfg.Storage.DBPath)
}

func TestLoad_MissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ODI_DB_PATH", "/env/odi.db")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/env/odi.db", cfg.Storage.DBPath)
}

func TestRules(t *testing.T) {
	dir := t.TempDir()
	mapFile := filepath.Join(dir, "cities.json")
	require.NoError(t, os.WriteFile(mapFile, []byte(`{"Sydney":"Australia","London":"England"}`), 0644))

	cfg := &Config{
		Data: DataConfig{
			EligibleTeams:   []string{"Australia", "England"},
			CutoffDate:      "2022-01-01",
			CityCountryFile: mapFile,
			// Inline entries override the file.
			CityCountry: map[string]string{"London": "Wales"},
		},
	}

	rules, err := cfg.Rules()
	require.NoError(t, err)
	assert.True(t, rules.EligibleTeams["Australia"])
	assert.False(t, rules.EligibleTeams["India"])
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), rules.Cutoff)
	assert.Equal(t, "Australia", rules.CityCountry["Sydney"])
	assert.Equal(t, "Wales", rules.CityCountry["London"])
}

func TestRules_BadCutoff(t *testing.T) {
	cfg := &Config{Data: DataConfig{CutoffDate: "not-a-date"}}
	_, err := cfg.Rules()
	assert.Error(t, err)
}
