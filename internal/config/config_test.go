package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "data/raw", cfg.Paths.RawDir)
	assert.Equal(t, "data/processed", cfg.Paths.ProcessedDir)
	assert.Equal(t, 10, cfg.Forecast.DefaultHorizon)
	assert.Equal(t, 30, cfg.Forecast.MaxHorizon)
	assert.Equal(t, 3, cfg.Cluster.K)
	assert.Equal(t, int64(42), cfg.Cluster.Seed)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
  format: json
cluster:
  k: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 4, cfg.Cluster.K)
	// Untouched sections keep their defaults
	assert.Equal(t, 10, cfg.Forecast.DefaultHorizon)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Cluster.K)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cluster:\n  k: 4\n"), 0644))

	t.Setenv("CO2_CLUSTER_K", "5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Cluster.K)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "k below 2",
			mutate:  func(c *Config) { c.Cluster.K = 1 },
			wantErr: "cluster.k",
		},
		{
			name:    "horizon above max",
			mutate:  func(c *Config) { c.Forecast.DefaultHorizon = 31 },
			wantErr: "forecast.default_horizon",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewPaths(t *testing.T) {
	paths := NewPaths(PathsConfig{
		RawDir:       "data/raw",
		ProcessedDir: "data/processed",
		ReportsDir:   "data/reports",
	})

	assert.Equal(t, filepath.Join("data", "raw", "co2.csv"), paths.CO2CSV)
	assert.Equal(t, filepath.Join("data", "raw", "energy.csv"), paths.EnergyCSV)
	assert.Equal(t, filepath.Join("data", "processed", "global_panel.csv"), paths.PanelCSV)
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	paths := NewPaths(PathsConfig{
		RawDir:       filepath.Join(base, "raw"),
		ProcessedDir: filepath.Join(base, "processed"),
		ReportsDir:   filepath.Join(base, "reports"),
	})

	require.NoError(t, paths.EnsureDirs())
	for _, dir := range []string{paths.RawDir, paths.ProcessedDir, paths.ReportsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
