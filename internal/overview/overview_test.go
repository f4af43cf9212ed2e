package overview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2cli/internal/panel"
)

func rec(country string, year int, co2, gdp float64) panel.Record {
	r := panel.NewRecord(country, year)
	r.CO2 = co2
	r.GDP = gdp
	return r
}

func TestGlobalEmissions(t *testing.T) {
	p := panel.New([]panel.Record{
		rec("France", 2019, 110, 2.6e12),
		rec("France", 2020, 120, 2.7e12),
		rec("Germany", 2019, 190, 3.7e12),
		rec("Germany", 2020, 200, 3.8e12),
	})

	totals := GlobalEmissions(p)
	require.Len(t, totals, 2)
	assert.Equal(t, YearTotal{Year: 2019, CO2: 300}, totals[0])
	assert.Equal(t, YearTotal{Year: 2020, CO2: 320}, totals[1])
}

func TestLatestYearWithGDP(t *testing.T) {
	p := panel.New([]panel.Record{
		rec("France", 2019, 110, 2.6e12),
		rec("France", 2020, 120, math.NaN()), // GDP not yet published for 2020
		rec("Germany", 2020, 200, math.NaN()),
	})

	year, ok := LatestYearWithGDP(p)
	require.True(t, ok)
	assert.Equal(t, 2019, year)
}

func TestLatestYearWithGDPNone(t *testing.T) {
	p := panel.New([]panel.Record{
		rec("France", 2020, 120, math.NaN()),
	})

	_, ok := LatestYearWithGDP(p)
	assert.False(t, ok)
}

func TestTopEmitters(t *testing.T) {
	p := panel.New([]panel.Record{
		rec("China", 2020, 10000, 1.5e13),
		rec("United States", 2020, 5000, 2.1e13),
		rec("India", 2020, 2500, 2.9e12),
		rec("France", 2020, 300, 2.7e12),
	})

	top := TopEmitters(p, 2020, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "China", top[0].Country)
	assert.Equal(t, "United States", top[1].Country)
}

func TestTopGDP(t *testing.T) {
	p := panel.New([]panel.Record{
		rec("China", 2020, 10000, 1.5e13),
		rec("United States", 2020, 5000, 2.1e13),
		rec("France", 2020, 300, 2.7e12),
	})

	top := TopGDP(p, 2020, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "United States", top[0].Country)
	assert.Equal(t, "China", top[1].Country)
}

func TestRankingsExcludeHyphenatedGroupings(t *testing.T) {
	p := panel.New([]panel.Record{
		rec("Non-OECD", 2020, 20000, 4e13),
		rec("China", 2020, 10000, 1.5e13),
		rec("France", 2020, 300, 2.7e12),
	})

	top := TopEmitters(p, 2020, 3)
	require.Len(t, top, 2)
	assert.Equal(t, "China", top[0].Country)
}

func TestRankingsSkipMissingValues(t *testing.T) {
	p := panel.New([]panel.Record{
		rec("China", 2020, 10000, math.NaN()),
		rec("France", 2020, 300, 2.7e12),
	})

	top := TopGDP(p, 2020, 10)
	require.Len(t, top, 1)
	assert.Equal(t, "France", top[0].Country)
}
