// Package errors defines the error taxonomy shared by the dataset builder
// and the analytics engines.
//
// Three failure classes exist:
//
//   - SchemaError: a raw input or panel file is missing a required column.
//     Fatal for the operation that hit it; never produces partial output.
//   - ForecastError: a non-empty but degenerate series cannot be fitted.
//     Surfaced to the caller, never swallowed.
//   - ValidationError: an out-of-range or unknown selection, rejected before
//     any computation begins.
//
// A fourth outcome, EmptyResult, is NOT an error: a valid selection that
// yields no usable rows is an expected terminal state and travels as a typed
// value with a human-readable reason.
package errors

import (
	"errors"
	"fmt"
)

// SchemaError reports a required column missing from a tabular source.
type SchemaError struct {
	Source string // logical source name, e.g. "co2", "energy", "panel"
	Column string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in %s source: required column %q is missing", e.Source, e.Column)
}

// NewSchemaError creates a SchemaError for the given source and column.
func NewSchemaError(source, column string) *SchemaError {
	return &SchemaError{Source: source, Column: column}
}

// ForecastError reports a series that is non-empty but cannot be fitted.
type ForecastError struct {
	Country string
	Reason  string
}

// Error implements the error interface.
func (e *ForecastError) Error() string {
	return fmt.Sprintf("forecast failed for %s: %s", e.Country, e.Reason)
}

// NewForecastError creates a ForecastError for the given country.
func NewForecastError(country, reason string) *ForecastError {
	return &ForecastError{Country: country, Reason: reason}
}

// ValidationError reports an input rejected before computation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// EmptyResult marks a valid selection that produced no usable rows.
// It is a value, not an error; callers render it as an empty chart with the
// Reason as its title.
type EmptyResult struct {
	Reason string `json:"reason"`
}

// Empty creates an EmptyResult with the given reason.
func Empty(reason string) *EmptyResult {
	return &EmptyResult{Reason: reason}
}

// IsSchemaError reports whether err is (or wraps) a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsForecastError reports whether err is (or wraps) a ForecastError.
func IsForecastError(err error) bool {
	var fe *ForecastError
	return errors.As(err, &fe)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
