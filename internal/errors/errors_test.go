package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaError(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		column   string
		expected string
	}{
		{"co2 source missing gdp", "co2", "gdp", `schema error in co2 source: required column "gdp" is missing`},
		{"energy source missing share", "energy", "renewables_share_energy", `schema error in energy source: required column "renewables_share_energy" is missing`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSchemaError(tt.source, tt.column)
			assert.Equal(t, tt.expected, err.Error())
			assert.True(t, IsSchemaError(err))
			assert.True(t, IsSchemaError(fmt.Errorf("build panel: %w", err)))
		})
	}
}

func TestForecastError(t *testing.T) {
	err := NewForecastError("France", "need at least 2 distinct data points, got 1")
	assert.Equal(t, "forecast failed for France: need at least 2 distinct data points, got 1", err.Error())
	assert.True(t, IsForecastError(err))
	assert.False(t, IsSchemaError(err))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("horizon", "must be between 1 and 30")
	assert.Equal(t, "invalid horizon: must be between 1 and 30", err.Error())
	assert.True(t, IsValidationError(fmt.Errorf("forecast: %w", err)))
}

func TestErrorClassesAreDisjoint(t *testing.T) {
	assert.False(t, IsValidationError(NewSchemaError("co2", "year")))
	assert.False(t, IsForecastError(NewValidationError("year", "unknown")))
}

func TestEmptyResult(t *testing.T) {
	er := Empty("no data for Atlantis")
	assert.Equal(t, "no data for Atlantis", er.Reason)
}
