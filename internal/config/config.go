package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
// Values layer in order: compiled-in defaults, then the optional YAML file,
// then environment variables with the CO2 prefix (e.g. CO2_LOGGING_LEVEL).
// The environment always wins.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Sources  SourcesConfig  `yaml:"sources" envconfig:"SOURCES"`
	Forecast ForecastConfig `yaml:"forecast" envconfig:"FORECAST"`
	Cluster  ClusterConfig  `yaml:"cluster" envconfig:"CLUSTER"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"` // text or json
}

// PathsConfig contains the directory layout for raw and processed data
type PathsConfig struct {
	RawDir       string `yaml:"raw_dir" envconfig:"RAW_DIR"`
	ProcessedDir string `yaml:"processed_dir" envconfig:"PROCESSED_DIR"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
}

// SourcesConfig contains the upstream locations of the two raw datasets
type SourcesConfig struct {
	CO2URL    string `yaml:"co2_url" envconfig:"CO2_URL"`
	EnergyURL string `yaml:"energy_url" envconfig:"ENERGY_URL"`
}

// ForecastConfig contains forecast engine defaults
type ForecastConfig struct {
	DefaultHorizon int `yaml:"default_horizon" envconfig:"DEFAULT_HORIZON"`
	MaxHorizon     int `yaml:"max_horizon" envconfig:"MAX_HORIZON"`
}

// ClusterConfig contains cluster engine defaults
type ClusterConfig struct {
	K       int   `yaml:"k" envconfig:"K"`
	Seed    int64 `yaml:"seed" envconfig:"SEED"`
	MaxIter int   `yaml:"max_iter" envconfig:"MAX_ITER"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Paths: PathsConfig{
			RawDir:       "data/raw",
			ProcessedDir: "data/processed",
			ReportsDir:   "data/reports",
		},
		Sources: SourcesConfig{
			CO2URL:    "https://raw.githubusercontent.com/owid/co2-data/master/owid-co2-data.csv",
			EnergyURL: "https://raw.githubusercontent.com/owid/energy-data/master/owid-energy-data.csv",
		},
		Forecast: ForecastConfig{
			DefaultHorizon: 10,
			MaxHorizon:     30,
		},
		Cluster: ClusterConfig{
			K:       3,
			Seed:    42,
			MaxIter: 300,
		},
	}
}

// Load reads configuration from the given YAML file (if path is non-empty
// and the file exists) and applies environment overrides on top of it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// Only env variables that are actually set override the layers below;
	// there are no envconfig default tags to clobber file values
	if err := envconfig.Process("CO2", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants that defaults alone cannot
// guarantee once a file or the environment has been applied.
func (c *Config) Validate() error {
	if c.Forecast.MaxHorizon < 1 {
		return fmt.Errorf("forecast.max_horizon must be >= 1, got %d", c.Forecast.MaxHorizon)
	}
	if c.Forecast.DefaultHorizon < 1 || c.Forecast.DefaultHorizon > c.Forecast.MaxHorizon {
		return fmt.Errorf("forecast.default_horizon must be in [1, %d], got %d", c.Forecast.MaxHorizon, c.Forecast.DefaultHorizon)
	}
	if c.Cluster.K < 2 {
		return fmt.Errorf("cluster.k must be >= 2, got %d", c.Cluster.K)
	}
	if c.Cluster.MaxIter < 1 {
		return fmt.Errorf("cluster.max_iter must be >= 1, got %d", c.Cluster.MaxIter)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
