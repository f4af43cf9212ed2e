package panel

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "co2cli/internal/errors"
)

func testRecord(country string, year int, co2 float64) Record {
	rec := emptyRecord()
	rec.Country = country
	rec.Year = year
	rec.CO2 = co2
	return rec
}

func TestNewIndexes(t *testing.T) {
	p := New([]Record{
		testRecord("France", 2019, 110),
		testRecord("France", 2020, 120),
		testRecord("Germany", 2020, 200),
		testRecord("Japan", 2018, 300),
	})

	assert.Equal(t, 4, p.Len())
	assert.Equal(t, []int{2020, 2019, 2018}, p.Years())
	assert.Equal(t, []string{"France", "Germany", "Japan"}, p.Countries())

	assert.True(t, p.HasYear(2019))
	assert.False(t, p.HasYear(1900))
	assert.True(t, p.HasCountry("Japan"))
	assert.False(t, p.HasCountry("Atlantis"))
}

func TestRowsForCountrySortedAscending(t *testing.T) {
	p := New([]Record{
		testRecord("France", 2020, 120),
		testRecord("France", 2018, 100),
		testRecord("France", 2019, 110),
	})

	rows := p.RowsForCountry("France")
	require.Len(t, rows, 3)
	assert.Equal(t, []int{2018, 2019, 2020}, []int{rows[0].Year, rows[1].Year, rows[2].Year})
}

func TestAccessorsReturnCopies(t *testing.T) {
	p := New([]Record{testRecord("France", 2020, 120)})

	rows := p.RowsForYear(2020)
	require.Len(t, rows, 1)
	rows[0].CO2 = -1
	rows[0].Country = "Mutated"

	again := p.RowsForYear(2020)
	require.Len(t, again, 1)
	assert.Equal(t, "France", again[0].Country)
	assert.Equal(t, 120.0, again[0].CO2)

	years := p.Years()
	years[0] = 1
	assert.Equal(t, []int{2020}, p.Years())
}

func TestReadValidCSV(t *testing.T) {
	csvData := strings.Join(Columns, ",") + "\n" +
		"France,2020,120,4.1,1.2,0.9,2700000000000,67000000,20,50,40,8,2,2500,19.5,47.1,52.9,6.8,2.6,9.9\n" +
		"Germany,2020,200,,,,,,,,,,,,,,,,,\n"

	p, err := Read(strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())

	france := p.RowsForCountry("France")
	require.Len(t, france, 1)
	assert.Equal(t, 120.0, france[0].CO2)
	assert.Equal(t, 4.1, france[0].CO2PerCapita)

	germany := p.RowsForCountry("Germany")
	require.Len(t, germany, 1)
	assert.Equal(t, 200.0, germany[0].CO2)
	assert.True(t, math.IsNaN(germany[0].GDP), "missing cell should decode as NaN")
}

func TestReadMissingColumnIsSchemaError(t *testing.T) {
	var cols []string
	for _, c := range Columns {
		if c != "gdp" {
			cols = append(cols, c)
		}
	}
	csvData := strings.Join(cols, ",") + "\n"

	_, err := Read(strings.NewReader(csvData))
	require.Error(t, err)
	assert.True(t, apperrors.IsSchemaError(err))
	assert.Contains(t, err.Error(), "gdp")
}

func TestReadUnexpectedColumnRejected(t *testing.T) {
	csvData := strings.Join(append(append([]string{}, Columns...), "surprise"), ",") + "\n"

	_, err := Read(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surprise")
}

func TestReadSkipsMalformedRows(t *testing.T) {
	header := strings.Join(Columns, ",")
	pad := strings.Repeat(",", len(Columns)-2)
	csvData := header + "\n" +
		",2020" + pad + "\n" + // no country
		"France,not-a-year" + pad + "\n" +
		"France,2020" + pad + "\n"

	p, err := Read(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	rec := testRecord("France", 2020, 120)
	rec.GDP = 2.7e12
	rec.RenewablesShareEnergy = 19.5

	header := make(map[string]int, len(Columns))
	for i, col := range Columns {
		header[col] = i
	}

	decoded, ok := DecodeRecord(header, rec.Encode())
	require.True(t, ok)
	assert.Equal(t, rec.Country, decoded.Country)
	assert.Equal(t, rec.Year, decoded.Year)
	assert.Equal(t, rec.CO2, decoded.CO2)
	assert.Equal(t, rec.GDP, decoded.GDP)
	assert.True(t, math.IsNaN(decoded.OilCO2))
}

func TestParseYearAcceptsFloatRendering(t *testing.T) {
	y, err := parseYear("2020.0")
	require.NoError(t, err)
	assert.Equal(t, 2020, y)

	_, err = parseYear("twenty-twenty")
	assert.Error(t, err)
}
