package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "co2cli/internal/errors"
)

// CO2Columns is the column subset retained from the CO₂ source.
var CO2Columns = []string{
	"country", "year",
	"co2", "co2_per_capita", "co2_growth_prct",
	"share_global_co2", "gdp", "population",
	"coal_co2", "oil_co2", "gas_co2", "cement_co2", "flaring_co2",
}

// EnergyColumns is the column subset retained from the energy source.
var EnergyColumns = []string{
	"country", "year",
	"primary_energy_consumption",
	"renewables_share_energy", "fossil_share_energy", "low_carbon_share_energy",
	"wind_share_elec", "solar_share_elec", "hydro_share_elec",
}

// Denylist contains supranational aggregates excluded from the panel.
// Matching is exact and case-sensitive against the country field.
var Denylist = map[string]bool{
	"World":                   true,
	"Asia":                    true,
	"Europe":                  true,
	"North America":           true,
	"South America":           true,
	"Africa":                  true,
	"European Union (27)":     true,
	"Oceania":                 true,
	"International transport": true,
}

// table is one raw tabular source held in memory during a build.
type table struct {
	source string // logical name, "co2" or "energy"
	header map[string]int
	rows   [][]string
}

// loadTable reads a raw source from disk. Files with an .xlsx extension are
// read as spreadsheets (first sheet); everything else is parsed as CSV.
func loadTable(source, path string) (*table, error) {
	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err = readXLSX(path)
	} else {
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s source: %w", source, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load %s source: file %s is empty", source, path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	return &table{source: source, header: header, rows: rows[1:]}, nil
}

// checkSchema verifies every required column is present. The first missing
// column aborts the build with a SchemaError naming it.
func (t *table) checkSchema(required []string) error {
	for _, col := range required {
		if _, ok := t.header[col]; !ok {
			return apperrors.NewSchemaError(t.source, col)
		}
	}
	return nil
}

// cell returns the value of the named column in the given row, or "" when
// the row is short.
func (t *table) cell(row []string, column string) string {
	idx, ok := t.header[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}
