package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"

	"co2cli/internal/exporter"
	"co2cli/internal/panel"
)

// Builder merges the two raw sources into the processed panel.
// It holds no mutable state across runs; re-running with identical inputs
// produces a row-set-identical output.
type Builder struct {
	outputCSV  string
	outputXLSX string // optional spreadsheet mirror, empty to skip
	logger     *slog.Logger
}

// NewBuilder creates a builder that persists the panel to outputCSV.
func NewBuilder(outputCSV string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{outputCSV: outputCSV, logger: logger}
}

// WithXLSXMirror configures an additional XLSX copy of the panel.
func (b *Builder) WithXLSXMirror(path string) *Builder {
	b.outputXLSX = path
	return b
}

// Build runs the full ETL: load both sources, validate their schemas,
// project to the retained columns, inner-join on (country, year), drop
// denylisted aggregates and rows missing co2 or year, persist the panel,
// and return it in memory.
//
// The output file is written atomically; a failed build never leaves a
// partial panel behind.
func (b *Builder) Build(ctx context.Context, co2Path, energyPath string) (*panel.Panel, error) {
	runID := uuid.New().String()
	logger := b.logger.With("run_id", runID)

	logger.InfoContext(ctx, "building panel",
		"co2_source", co2Path,
		"energy_source", energyPath,
		"output", b.outputCSV,
	)

	co2, err := loadTable("co2", co2Path)
	if err != nil {
		return nil, err
	}
	if err := co2.checkSchema(CO2Columns); err != nil {
		return nil, err
	}

	energy, err := loadTable("energy", energyPath)
	if err != nil {
		return nil, err
	}
	if err := energy.checkSchema(EnergyColumns); err != nil {
		return nil, err
	}

	records := join(co2, energy)
	logger.InfoContext(ctx, "sources joined", "rows", len(records))

	kept := make([]panel.Record, 0, len(records))
	var denied, incomplete int
	for _, rec := range records {
		if Denylist[rec.Country] {
			denied++
			continue
		}
		if math.IsNaN(rec.CO2) {
			incomplete++
			continue
		}
		kept = append(kept, rec)
	}

	// Deterministic output ordering keeps repeated builds byte-comparable
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Country != kept[j].Country {
			return kept[i].Country < kept[j].Country
		}
		return kept[i].Year < kept[j].Year
	})

	logger.InfoContext(ctx, "panel cleaned",
		"kept", len(kept),
		"denylisted", denied,
		"missing_co2", incomplete,
	)

	if err := b.persist(kept); err != nil {
		return nil, fmt.Errorf("persist panel: %w", err)
	}

	logger.InfoContext(ctx, "panel build completed", "records", len(kept))
	return panel.New(kept), nil
}

// join inner-joins the two sources on (country, year). Rows with no match on
// the other side are dropped; a country-year must have both emissions and
// energy data to be usable. Rows without a parseable country or year never
// reach the panel.
func join(co2, energy *table) []panel.Record {
	type key struct {
		country string
		year    string
	}

	energyByKey := make(map[key][]string, len(energy.rows))
	for _, row := range energy.rows {
		country := energy.cell(row, "country")
		year := energy.cell(row, "year")
		if country == "" || year == "" {
			continue
		}
		energyByKey[key{country, year}] = row
	}

	header := make(map[string]int, len(panel.Columns))
	for i, col := range panel.Columns {
		header[col] = i
	}

	var records []panel.Record
	for _, co2Row := range co2.rows {
		country := co2.cell(co2Row, "country")
		year := co2.cell(co2Row, "year")
		if country == "" || year == "" {
			continue
		}
		energyRow, ok := energyByKey[key{country, year}]
		if !ok {
			continue
		}

		merged := make([]string, len(panel.Columns))
		for i, col := range panel.Columns {
			switch {
			case col == "country" || col == "year":
				merged[i] = co2.cell(co2Row, col)
			case contains(CO2Columns, col):
				merged[i] = co2.cell(co2Row, col)
			default:
				merged[i] = energy.cell(energyRow, col)
			}
		}

		rec, ok := panel.DecodeRecord(header, merged)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func (b *Builder) persist(records []panel.Record) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Encode())
	}
	options := exporter.WriteOptions{Headers: panel.Columns, Records: rows}

	if err := exporter.WriteCSV(b.outputCSV, options); err != nil {
		return err
	}
	if b.outputXLSX != "" {
		if err := exporter.WriteXLSX(b.outputXLSX, "Panel", options); err != nil {
			return err
		}
	}
	return nil
}

func contains(cols []string, name string) bool {
	for _, c := range cols {
		if c == name {
			return true
		}
	}
	return false
}
