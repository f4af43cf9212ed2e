package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the file paths the pipeline reads and writes.
// This is the single source of truth for file locations; nothing else in the
// codebase joins path segments for data files.
type Paths struct {
	RawDir       string
	ProcessedDir string
	ReportsDir   string

	// Raw inputs
	CO2CSV    string
	EnergyCSV string

	// Processed panel, the durable interface between the builder and the
	// analytics engines
	PanelCSV  string
	PanelXLSX string
}

// NewPaths derives the concrete file paths from the configured directories.
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		RawDir:       cfg.RawDir,
		ProcessedDir: cfg.ProcessedDir,
		ReportsDir:   cfg.ReportsDir,
		CO2CSV:       filepath.Join(cfg.RawDir, "co2.csv"),
		EnergyCSV:    filepath.Join(cfg.RawDir, "energy.csv"),
		PanelCSV:     filepath.Join(cfg.ProcessedDir, "global_panel.csv"),
		PanelXLSX:    filepath.Join(cfg.ProcessedDir, "global_panel.xlsx"),
	}
}

// EnsureDirs creates the raw, processed, and reports directories if missing.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.RawDir, p.ProcessedDir, p.ReportsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
