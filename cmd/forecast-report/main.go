// Command forecast-report computes a per-country emissions forecast from
// the processed panel and writes it as CSV, JSON, and an optional PNG chart.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"co2cli/internal/chart"
	"co2cli/internal/config"
	"co2cli/internal/exporter"
	"co2cli/internal/forecast"
	"co2cli/internal/panel"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	country := flag.String("country", "United States", "country to forecast")
	horizon := flag.Int("horizon", 0, "forecast horizon in years, 1-30 (defaults to configured default)")
	withPNG := flag.Bool("png", false, "also render a PNG chart")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(config.NewLogger(cfg.Logging, os.Stderr))

	paths := config.NewPaths(cfg.Paths)
	if *horizon == 0 {
		*horizon = cfg.Forecast.DefaultHorizon
	}

	p, err := panel.Load(paths.PanelCSV)
	if err != nil {
		slog.Error("Failed to load panel",
			"path", paths.PanelCSV,
			"error", err,
			"hint", "run the builder first to generate the panel")
		os.Exit(1)
	}

	engine := forecast.NewEngine(slog.Default())
	result, err := engine.Forecast(p, forecast.Request{Country: *country, Horizon: *horizon})
	if err != nil {
		slog.Error("Forecast failed", "country", *country, "error", err)
		os.Exit(1)
	}

	base := filepath.Join(paths.ReportsDir, "forecast_"+slugify(*country))
	if err := writeReport(result, base, *withPNG); err != nil {
		slog.Error("Failed to write forecast report", "error", err)
		os.Exit(1)
	}

	if result.IsEmpty() {
		slog.Warn("Forecast selection has no data", "reason", result.Empty.Reason)
		return
	}
	slog.Info("Forecast report written",
		"country", *country,
		"horizon", *horizon,
		"points", len(result.Points),
		"base_path", base,
	)
}

func writeReport(result *forecast.Result, base string, withPNG bool) error {
	records := make([][]string, 0, len(result.Points))
	for _, pt := range result.Points {
		observed := ""
		if pt.Observed != nil {
			observed = strconv.FormatFloat(*pt.Observed, 'f', -1, 64)
		}
		records = append(records, []string{
			strconv.Itoa(pt.Year),
			observed,
			strconv.FormatFloat(pt.Estimate, 'f', 6, 64),
			strconv.FormatFloat(pt.Lower, 'f', 6, 64),
			strconv.FormatFloat(pt.Upper, 'f', 6, 64),
			strconv.FormatBool(pt.IsForecast),
		})
	}
	if err := exporter.WriteCSV(base+".csv", exporter.WriteOptions{
		Headers: []string{"year", "observed", "estimate", "lower", "upper", "is_forecast"},
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
		if err := chart.SaveForecast(result, base+".png"); err != nil {
			return err
		}
	}
	return nil
}

func slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	return strings.Trim(slug, "_")
}
