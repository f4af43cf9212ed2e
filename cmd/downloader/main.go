// Command downloader refreshes the two raw OWID source files. It is the
// offline batch acquisition step; run it before the builder.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"co2cli/internal/config"
	"co2cli/internal/dataset"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(config.NewLogger(cfg.Logging, os.Stderr))

	paths := config.NewPaths(cfg.Paths)
	if err := paths.EnsureDirs(); err != nil {
		slog.Error("Failed to create data directories", "error", err)
		os.Exit(1)
	}

	d := dataset.NewDownloader(
		cfg.Sources.CO2URL,
		cfg.Sources.EnergyURL,
		paths.CO2CSV,
		paths.EnergyCSV,
		slog.Default(),
	)
	if err := d.Fetch(context.Background()); err != nil {
		slog.Error("Raw data refresh failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Raw data refreshed",
		"co2", paths.CO2CSV,
		"energy", paths.EnergyCSV,
	)
}
