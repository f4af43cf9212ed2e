// Command builder runs the offline ETL: it merges the raw CO₂ and energy
// sources into the processed panel that every analytics engine reads.
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
	co2Path := flag.String("co2", "", "path to raw CO₂ source (defaults to configured raw dir)")
	energyPath := flag.String("energy", "", "path to raw energy source (defaults to configured raw dir)")
	withXLSX := flag.Bool("xlsx", false, "also write an XLSX mirror of the panel")
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

	if *co2Path == "" {
		*co2Path = paths.CO2CSV
	}
	if *energyPath == "" {
		*energyPath = paths.EnergyCSV
	}

	builder := dataset.NewBuilder(paths.PanelCSV, slog.Default())
	if *withXLSX {
		builder = builder.WithXLSXMirror(paths.PanelXLSX)
	}

	p, err := builder.Build(context.Background(), *co2Path, *energyPath)
	if err != nil {
		slog.Error("Panel build failed", "error", err)
		os.Exit(1)
	}

	if years := p.Years(); len(years) > 0 {
		slog.Info("Panel ready",
			"path", paths.PanelCSV,
			"records", p.Len(),
			"countries", len(p.Countries()),
			"latest_year", years[0],
			"earliest_year", years[len(years)-1],
		)
	} else {
		slog.Warn("Panel built but contains no records", "path", paths.PanelCSV)
	}
}
