// Package overview computes the aggregate statistics behind the global
// overview view: worldwide emissions over time and the top emitters and
// economies for the most recent year with GDP data.
package overview

import (
	"math"
	"sort"
	"strings"

	"co2cli/internal/panel"
)

// YearTotal is the summed co2 across all panel countries for one year.
type YearTotal struct {
	Year int     `json:"year"`
	CO2  float64 `json:"co2"`
}

// CountryValue is one country's value in a ranking.
type CountryValue struct {
	Country string  `json:"country"`
	Value   float64 `json:"value"`
}

// GlobalEmissions returns total co2 per year, ascending by year. Missing
// co2 values never occur in a built panel but are skipped defensively when
// the panel was assembled in memory.
func GlobalEmissions(p *panel.Panel) []YearTotal {
	byYear := make(map[int]float64)
	for _, rec := range p.All() {
		if math.IsNaN(rec.CO2) {
			continue
		}
		byYear[rec.Year] += rec.CO2
	}

	totals := make([]YearTotal, 0, len(byYear))
	for year, co2 := range byYear {
		totals = append(totals, YearTotal{Year: year, CO2: co2})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Year < totals[j].Year })
	return totals
}

// LatestYearWithGDP returns the most recent year for which any row carries
// GDP data, and false when no row does.
func LatestYearWithGDP(p *panel.Panel) (int, bool) {
	for _, year := range p.Years() { // descending
		for _, rec := range p.RowsForYear(year) {
			if !math.IsNaN(rec.GDP) {
				return year, true
			}
		}
	}
	return 0, false
}

// TopEmitters returns the n countries with the highest co2 for the year,
// descending.
func TopEmitters(p *panel.Panel, year, n int) []CountryValue {
	return topBy(p, year, n, func(rec panel.Record) float64 { return rec.CO2 })
}

// TopGDP returns the n countries with the highest GDP for the year,
// descending.
func TopGDP(p *panel.Panel, year, n int) []CountryValue {
	return topBy(p, year, n, func(rec panel.Record) float64 { return rec.GDP })
}

func topBy(p *panel.Panel, year, n int, value func(panel.Record) float64) []CountryValue {
	var ranked []CountryValue
	for _, rec := range p.RowsForYear(year) {
		// Pseudo-country rows like "Asia (excl. China)" or hyphenated
		// groupings slip past the aggregate denylist; rankings drop any
		// hyphenated name the way the overview always has.
		if strings.Contains(rec.Country, "-") {
			continue
		}
		v := value(rec)
		if math.IsNaN(v) {
			continue
		}
		ranked = append(ranked, CountryValue{Country: rec.Country, Value: v})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return ranked[i].Country < ranked[j].Country
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
