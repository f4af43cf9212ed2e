// Command cluster-report groups countries by emissions and energy profile
// for a selected year and writes the assignments as CSV, JSON, and an
// optional PNG chart.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"co2cli/internal/chart"
	"co2cli/internal/cluster"
	"co2cli/internal/config"
	"co2cli/internal/exporter"
	"co2cli/internal/panel"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	year := flag.Int("year", 0, "year to cluster (defaults to the latest year in the panel)")
	k := flag.Int("k", 0, "number of clusters, >= 2 (defaults to configured value)")
	withPNG := flag.Bool("png", false, "also render a PNG chart")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(config.NewLogger(cfg.Logging, os.Stderr))

	paths := config.NewPaths(cfg.Paths)
	if *k == 0 {
		*k = cfg.Cluster.K
	}

	p, err := panel.Load(paths.PanelCSV)
	if err != nil {
		slog.Error("Failed to load panel",
			"path", paths.PanelCSV,
			"error", err,
			"hint", "run the builder first to generate the panel")
		os.Exit(1)
	}

	if *year == 0 {
		years := p.Years()
		if len(years) == 0 {
			slog.Error("Panel contains no years")
			os.Exit(1)
		}
		*year = years[0]
	}

	engine := cluster.NewEngine(cfg.Cluster.Seed, cfg.Cluster.MaxIter, slog.Default())
	result, err := engine.Cluster(p, cluster.Request{Year: *year, K: *k})
	if err != nil {
		slog.Error("Clustering failed", "year", *year, "error", err)
		os.Exit(1)
	}

	base := filepath.Join(paths.ReportsDir, fmt.Sprintf("clusters_%d", *year))
	if err := writeReport(result, base, *withPNG); err != nil {
		slog.Error("Failed to write cluster report", "error", err)
		os.Exit(1)
	}

	if result.IsEmpty() {
		slog.Warn("Cluster selection has no complete rows", "reason", result.Empty.Reason)
		return
	}
	slog.Info("Cluster report written",
		"year", *year,
		"k", *k,
		"countries", len(result.Assignments),
		"base_path", base,
	)
}

func writeReport(result *cluster.Result, base string, withPNG bool) error {
	headers := append([]string{"country", "cluster_id", "label"}, cluster.FeatureNames...)
	records := make([][]string, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		row := []string{a.Country, strconv.Itoa(a.ClusterID), a.Label}
		for _, v := range a.Features {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		records = append(records, row)
	}
	if err := exporter.WriteCSV(base+".csv", exporter.WriteOptions{
		Headers: headers,
		Records: records,
	}); err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(base+".json", data, 0644); err != nil {
		return fmt.Errorf("write JSON report: %w", err)
	}

	if withPNG {
		if err := chart.SaveCluster(result, base+".png"); err != nil {
			return err
		}
	}
	return nil
}
