package panel

import (
	"math"
	"strconv"
)

// Columns is the canonical column order of the panel file. It is the union
// of the retained CO₂ and energy columns; changing it is a breaking change
// for every downstream consumer of the panel.
var Columns = []string{
	"country", "year",
	"co2", "co2_per_capita", "co2_growth_prct",
	"share_global_co2", "gdp", "population",
	"coal_co2", "oil_co2", "gas_co2", "cement_co2", "flaring_co2",
	"primary_energy_consumption",
	"renewables_share_energy", "fossil_share_energy", "low_carbon_share_energy",
	"wind_share_elec", "solar_share_elec", "hydro_share_elec",
}

// Record is one (country, year) observation of the merged panel.
// Numeric fields use NaN for missing values; Year and Country are always
// present because the builder drops rows without them.
type Record struct {
	Country string `json:"country"`
	Year    int    `json:"year"`

	CO2            float64 `json:"co2"`
	CO2PerCapita   float64 `json:"co2_per_capita"`
	CO2GrowthPrct  float64 `json:"co2_growth_prct"`
	ShareGlobalCO2 float64 `json:"share_global_co2"`
	GDP            float64 `json:"gdp"`
	Population     float64 `json:"population"`

	CoalCO2    float64 `json:"coal_co2"`
	OilCO2     float64 `json:"oil_co2"`
	GasCO2     float64 `json:"gas_co2"`
	CementCO2  float64 `json:"cement_co2"`
	FlaringCO2 float64 `json:"flaring_co2"`

	PrimaryEnergyConsumption float64 `json:"primary_energy_consumption"`
	RenewablesShareEnergy    float64 `json:"renewables_share_energy"`
	FossilShareEnergy        float64 `json:"fossil_share_energy"`
	LowCarbonShareEnergy     float64 `json:"low_carbon_share_energy"`
	WindShareElec            float64 `json:"wind_share_elec"`
	SolarShareElec           float64 `json:"solar_share_elec"`
	HydroShareElec           float64 `json:"hydro_share_elec"`
}

// numericFields maps a column name to accessor/mutator pairs so encoding and
// decoding stay in lockstep with Columns.
func (r *Record) fieldPtr(column string) *float64 {
	switch column {
	case "co2":
		return &r.CO2
	case "co2_per_capita":
		return &r.CO2PerCapita
	case "co2_growth_prct":
		return &r.CO2GrowthPrct
	case "share_global_co2":
		return &r.ShareGlobalCO2
	case "gdp":
		return &r.GDP
	case "population":
		return &r.Population
	case "coal_co2":
		return &r.CoalCO2
	case "oil_co2":
		return &r.OilCO2
	case "gas_co2":
		return &r.GasCO2
	case "cement_co2":
		return &r.CementCO2
	case "flaring_co2":
		return &r.FlaringCO2
	case "primary_energy_consumption":
		return &r.PrimaryEnergyConsumption
	case "renewables_share_energy":
		return &r.RenewablesShareEnergy
	case "fossil_share_energy":
		return &r.FossilShareEnergy
	case "low_carbon_share_energy":
		return &r.LowCarbonShareEnergy
	case "wind_share_elec":
		return &r.WindShareElec
	case "solar_share_elec":
		return &r.SolarShareElec
	case "hydro_share_elec":
		return &r.HydroShareElec
	}
	return nil
}

// Encode renders the record as a CSV row in canonical column order.
// Missing values (NaN) become empty cells.
func (r Record) Encode() []string {
	row := make([]string, 0, len(Columns))
	for _, col := range Columns {
		switch col {
		case "country":
			row = append(row, r.Country)
		case "year":
			row = append(row, strconv.Itoa(r.Year))
		default:
			v := *r.fieldPtr(col)
			if math.IsNaN(v) {
				row = append(row, "")
			} else {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
	}
	return row
}

// DecodeRecord parses one CSV row using the given header layout.
// Cells that are empty or unparseable become NaN; country and year are
// required and reported via ok=false when absent or malformed.
func DecodeRecord(header map[string]int, row []string) (rec Record, ok bool) {
	rec = emptyRecord()

	ci, found := header["country"]
	if !found || ci >= len(row) || row[ci] == "" {
		return rec, false
	}
	rec.Country = row[ci]

	yi, found := header["year"]
	if !found || yi >= len(row) {
		return rec, false
	}
	year, err := parseYear(row[yi])
	if err != nil {
		return rec, false
	}
	rec.Year = year

	for col, idx := range header {
		if col == "country" || col == "year" {
			continue
		}
		ptr := rec.fieldPtr(col)
		if ptr == nil || idx >= len(row) || row[idx] == "" {
			continue
		}
		if v, err := strconv.ParseFloat(row[idx], 64); err == nil {
			*ptr = v
		}
	}
	return rec, true
}

// NewRecord returns a Record for (country, year) with every numeric field
// set to NaN. Callers fill in the values they have.
func NewRecord(country string, year int) Record {
	rec := emptyRecord()
	rec.Country = country
	rec.Year = year
	return rec
}

// emptyRecord returns a Record with every numeric field set to NaN.
func emptyRecord() Record {
	nan := math.NaN()
	return Record{
		CO2: nan, CO2PerCapita: nan, CO2GrowthPrct: nan,
		ShareGlobalCO2: nan, GDP: nan, Population: nan,
		CoalCO2: nan, OilCO2: nan, GasCO2: nan, CementCO2: nan, FlaringCO2: nan,
		PrimaryEnergyConsumption: nan, RenewablesShareEnergy: nan,
		FossilShareEnergy: nan, LowCarbonShareEnergy: nan,
		WindShareElec: nan, SolarShareElec: nan, HydroShareElec: nan,
	}
}

// parseYear accepts both integer years and the float rendering some
// spreadsheet exports produce ("2020.0").
func parseYear(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
