// Package forecast implements the per-country emissions forecast engine.
//
// Given a country and a horizon of 1 to 30 years it fits an additive trend
// over the country's annual (year, co2) history and extends it by the
// horizon, producing a central estimate with a two-sided 95% uncertainty
// band for every point. The series is annual, so no seasonal component is
// fitted, and year gaps are tolerated.
//
// A selection with no usable rows returns a Result whose Empty field carries
// a human-readable reason; that is an expected outcome, not an error. A
// degenerate series (fewer than two distinct years) fails with a
// ForecastError.
package forecast
