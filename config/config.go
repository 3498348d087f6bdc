// Package config loads the pipeline configuration: eligibility rules,
// weighting parameters and storage paths.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pable/go-odi-features/internal/features"
	"github.com/pable/go-odi-features/internal/model"
	"github.com/pable/go-odi-features/internal/parser"
)

// Config is the full pipeline configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Features FeaturesConfig `yaml:"features"`
	Storage  StorageConfig  `yaml:"storage"`
}

// DataConfig controls which raw records enter the base dataset.
type DataConfig struct {
	RawDir        string   `yaml:"raw_dir"`
	EligibleTeams []string `yaml:"eligible_teams"`
	CutoffDate    string   `yaml:"cutoff_date"` // YYYY-MM-DD; earlier matches are excluded

	// Host-nation lookup for the home-advantage feature. city_country_file
	// points at a JSON object {city: country}; inline city_country entries
	// override it.
	CityCountryFile string            `yaml:"city_country_file"`
	CityCountry     map[string]string `yaml:"city_country"`
}

// FeaturesConfig controls the recency weighting.
type FeaturesConfig struct {
	HalfLifeDays float64 `yaml:"half_life_days"`
}

// StorageConfig controls where datasets are persisted.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// DefaultEligibleTeams is the tournament's eligible-team set, used when the
// config names none.
var DefaultEligibleTeams = []string{
	"Australia",
	"Bangladesh",
	"England",
	"India",
	"New Zealand",
	"Pakistan",
	"South Africa",
	"Sri Lanka",
}

// DefaultCutoffDate excludes matches before the historical window starts.
const DefaultCutoffDate = "2022-01-01"

// Load reads the YAML config at path and applies .env and environment
// overrides. An empty path yields the defaults; a named file must exist.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)
	return &cfg, nil
}

// Rules converts the data section into parser eligibility rules.
func (c *Config) Rules() (parser.Rules, error) {
	cutoff, err := time.Parse(model.DateFormat, c.Data.CutoffDate)
	if err != nil {
		return parser.Rules{}, fmt.Errorf("config: bad cutoff_date %q: %w", c.Data.CutoffDate, err)
	}

	eligible := make(map[string]bool, len(c.Data.EligibleTeams))
	for _, t := range c.Data.EligibleTeams {
		eligible[t] = true
	}

	cityCountry := make(map[string]string)
	if c.Data.CityCountryFile != "" {
		data, err := os.ReadFile(c.Data.CityCountryFile)
		if err != nil {
			return parser.Rules{}, fmt.Errorf("config: read city_country_file: %w", err)
		}
		if err := json.Unmarshal(data, &cityCountry); err != nil {
			return parser.Rules{}, fmt.Errorf("config: parse city_country_file: %w", err)
		}
	}
	for city, country := range c.Data.CityCountry {
		cityCountry[city] = country
	}

	return parser.Rules{
		EligibleTeams: eligible,
		Cutoff:        cutoff,
		CityCountry:   cityCountry,
	}, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ODI_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ODI_RAW_DIR"); v != "" {
		cfg.Data.RawDir = v
	}
}

func setDefaults(cfg *Config) {
	if len(cfg.Data.EligibleTeams) == 0 {
		cfg.Data.EligibleTeams = DefaultEligibleTeams
	}
	if cfg.Data.CutoffDate == "" {
		cfg.Data.CutoffDate = DefaultCutoffDate
	}
	if cfg.Features.HalfLifeDays <= 0 {
		cfg.Features.HalfLifeDays = features.DefaultHalfLifeDays
	}
}
