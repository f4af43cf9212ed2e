package panel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	apperrors "co2cli/internal/errors"
)

// Panel is the merged, cleaned country-year dataset. It is loaded once per
// process and treated as read-only thereafter; every accessor hands out
// fresh slices so callers can never write through to the shared records.
type Panel struct {
	records   []Record
	byYear    map[int][]int
	byCountry map[string][]int
	years     []int    // descending
	countries []string // ascending
}

// New builds a Panel from in-memory records, indexing them by year and
// country.
func New(records []Record) *Panel {
	p := &Panel{
		records:   records,
		byYear:    make(map[int][]int),
		byCountry: make(map[string][]int),
	}
	for i, rec := range records {
		p.byYear[rec.Year] = append(p.byYear[rec.Year], i)
		p.byCountry[rec.Country] = append(p.byCountry[rec.Country], i)
	}
	for year := range p.byYear {
		p.years = append(p.years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(p.years)))
	for country := range p.byCountry {
		p.countries = append(p.countries, country)
	}
	sort.Strings(p.countries)
	return p
}

// Load reads a panel file produced by the dataset builder and validates its
// header against the canonical schema. A missing column is a SchemaError;
// extra columns are rejected as well since they indicate a builder/engine
// version mismatch.
func Load(path string) (*Panel, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open panel file: %w", err)
	}
	defer file.Close()

	return Read(file)
}

// Read parses panel CSV content from r. Split out from Load for testability.
func Read(r io.Reader) (*Panel, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read panel CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("panel file is empty")
	}

	header, err := validateHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		rec, ok := DecodeRecord(header, row)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		slog.Warn("skipped malformed panel rows", "count", skipped)
	}

	slog.Info("panel loaded",
		"records", len(records),
		"countries", len(uniqueCountries(records)),
	)
	return New(records), nil
}

// validateHeader maps column name to index and enforces the canonical
// schema in both directions.
func validateHeader(row []string) (map[string]int, error) {
	header := make(map[string]int, len(row))
	for i, name := range row {
		header[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	for _, col := range Columns {
		if _, ok := header[col]; !ok {
			return nil, apperrors.NewSchemaError("panel", col)
		}
	}
	if len(header) > len(Columns) {
		known := make(map[string]bool, len(Columns))
		for _, col := range Columns {
			known[col] = true
		}
		for name := range header {
			if !known[name] {
				return nil, fmt.Errorf("panel file has unexpected column %q", name)
			}
		}
	}
	return header, nil
}

// Len returns the number of records in the panel.
func (p *Panel) Len() int { return len(p.records) }

// Years returns every year present in the panel, descending. The slice is a
// copy; mutating it does not affect the panel.
func (p *Panel) Years() []int {
	years := make([]int, len(p.years))
	copy(years, p.years)
	return years
}

// Countries returns every country present in the panel, sorted ascending.
func (p *Panel) Countries() []string {
	countries := make([]string, len(p.countries))
	copy(countries, p.countries)
	return countries
}

// HasYear reports whether the panel contains any record for the year.
func (p *Panel) HasYear(year int) bool {
	_, ok := p.byYear[year]
	return ok
}

// HasCountry reports whether the panel contains any record for the country.
func (p *Panel) HasCountry(country string) bool {
	_, ok := p.byCountry[country]
	return ok
}

// RowsForYear returns copies of every record for the given year.
func (p *Panel) RowsForYear(year int) []Record {
	return p.copyRows(p.byYear[year])
}

// RowsForCountry returns copies of every record for the given country,
// sorted ascending by year.
func (p *Panel) RowsForCountry(country string) []Record {
	rows := p.copyRows(p.byCountry[country])
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows
}

// All returns a copy of every record in the panel.
func (p *Panel) All() []Record {
	rows := make([]Record, len(p.records))
	copy(rows, p.records)
	return rows
}

func (p *Panel) copyRows(idxs []int) []Record {
	rows := make([]Record, 0, len(idxs))
	for _, i := range idxs {
		rows = append(rows, p.records[i])
	}
	return rows
}

func uniqueCountries(records []Record) map[string]struct{} {
	set := make(map[string]struct{})
	for _, rec := range records {
		set[rec.Country] = struct{}{}
	}
	return set
}
