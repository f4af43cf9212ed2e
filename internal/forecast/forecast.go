package forecast

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/stat"

	apperrors "co2cli/internal/errors"
	"co2cli/internal/panel"
)

// z975 is the two-sided 95% normal quantile used for the uncertainty band.
const z975 = 1.959963984540054

// sigmaFloorFrac keeps the band strictly positive even for a perfectly
// linear history, as a fraction of the mean absolute observed value.
const sigmaFloorFrac = 0.01

// Request selects a country and a forecast horizon in years.
type Request struct {
	Country string `json:"country" validate:"required"`
	Horizon int    `json:"horizon" validate:"min=1,max=30"`
}

// Point is one annual point of a forecast result. Historical points carry
// the observed value alongside the fitted triple; horizon points carry the
// fitted triple only.
type Point struct {
	Year       int      `json:"year"`
	Observed   *float64 `json:"observed,omitempty"`
	Estimate   float64  `json:"estimate"`
	Lower      float64  `json:"lower"`
	Upper      float64  `json:"upper"`
	IsForecast bool     `json:"is_forecast"`
}

// Result is the chart-ready outcome of a forecast call. When Empty is
// non-nil the selection yielded no usable rows and Points is empty; callers
// render Empty.Reason as the title of an empty chart.
type Result struct {
	Country string                 `json:"country"`
	Horizon int                    `json:"horizon"`
	Points  []Point                `json:"points,omitempty"`
	Empty   *apperrors.EmptyResult `json:"empty,omitempty"`
}

// IsEmpty reports whether the selection produced no usable rows.
func (r *Result) IsEmpty() bool { return r.Empty != nil }

// Engine fits per-country emissions trends. It is stateless between calls
// and safe for concurrent use over a shared read-only panel.
type Engine struct {
	validate *validator.Validate
	logger   *slog.Logger
}

// NewEngine creates a forecast engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Forecast fits an additive trend on the country's (year, co2) history and
// extends it by the requested horizon. The data is annual, so the seasonal
// component of the decomposition is disabled and the fit reduces to the
// trend; year gaps are handled naturally because each year is a plain
// numeric time point.
//
// A country with no usable rows yields a Result with Empty set, not an
// error. A non-empty but degenerate series (fewer than 2 distinct years)
// fails with a ForecastError.
func (e *Engine) Forecast(p *panel.Panel, req Request) (*Result, error) {
	if err := e.validateRequest(req); err != nil {
		return nil, err
	}

	series := extractSeries(p, req.Country)
	if len(series) == 0 {
		e.logger.Info("forecast selection has no data", "country", req.Country)
		return &Result{
			Country: req.Country,
			Horizon: req.Horizon,
			Empty:   apperrors.Empty(fmt.Sprintf("no data for %s", req.Country)),
		}, nil
	}

	fit, err := fitTrend(req.Country, series)
	if err != nil {
		return nil, err
	}

	points := make([]Point, 0, len(series)+req.Horizon)
	for _, obs := range series {
		pt := fit.at(obs.year)
		v := obs.co2
		pt.Observed = &v
		points = append(points, pt)
	}
	lastYear := series[len(series)-1].year
	for i := 1; i <= req.Horizon; i++ {
		pt := fit.at(lastYear + i)
		pt.IsForecast = true
		points = append(points, pt)
	}

	e.logger.Info("forecast computed",
		"country", req.Country,
		"observed_points", len(series),
		"horizon", req.Horizon,
	)
	return &Result{Country: req.Country, Horizon: req.Horizon, Points: points}, nil
}

func (e *Engine) validateRequest(req Request) error {
	if err := e.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Field() == "Horizon" {
				return apperrors.NewValidationError("horizon", "must be between 1 and 30")
			}
			return apperrors.NewValidationError("country", "must not be empty")
		}
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}

// observation is one usable (year, co2) pair.
type observation struct {
	year int
	co2  float64
}

// extractSeries collects the country's non-missing co2 values, ascending by
// year.
func extractSeries(p *panel.Panel, country string) []observation {
	var series []observation
	for _, rec := range p.RowsForCountry(country) {
		if math.IsNaN(rec.CO2) {
			continue
		}
		series = append(series, observation{year: rec.Year, co2: rec.CO2})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].year < series[j].year })
	return series
}

// trendFit holds the fitted linear trend and the quantities needed for
// prediction intervals at arbitrary years.
type trendFit struct {
	alpha, beta float64
	n           float64
	meanX       float64
	sxx         float64
	sigma       float64
}

// fitTrend performs the least-squares trend fit over the series.
// Deterministic: no randomness anywhere in this path.
func fitTrend(country string, series []observation) (*trendFit, error) {
	years := make(map[int]struct{}, len(series))
	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, obs := range series {
		years[obs.year] = struct{}{}
		xs[i] = float64(obs.year)
		ys[i] = obs.co2
	}
	if len(years) < 2 {
		return nil, apperrors.NewForecastError(country,
			fmt.Sprintf("need at least 2 distinct data points, got %d", len(years)))
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return nil, apperrors.NewForecastError(country, "trend fit produced no finite coefficients")
	}

	n := float64(len(series))
	meanX := stat.Mean(xs, nil)

	var sxx, sse, sumAbsY float64
	for i := range xs {
		dx := xs[i] - meanX
		sxx += dx * dx
		resid := ys[i] - (alpha + beta*xs[i])
		sse += resid * resid
		sumAbsY += math.Abs(ys[i])
	}

	var sigma float64
	if n > 2 {
		sigma = math.Sqrt(sse / (n - 2))
	}
	floor := sigmaFloorFrac * sumAbsY / n
	if floor == 0 {
		floor = sigmaFloorFrac
	}
	if sigma < floor {
		sigma = floor
	}

	return &trendFit{alpha: alpha, beta: beta, n: n, meanX: meanX, sxx: sxx, sigma: sigma}, nil
}

// at evaluates the trend and its two-sided 95% prediction interval at the
// given year.
func (f *trendFit) at(year int) Point {
	x := float64(year)
	estimate := f.alpha + f.beta*x

	dx := x - f.meanX
	se := f.sigma * math.Sqrt(1+1/f.n+dx*dx/f.sxx)
	margin := z975 * se

	return Point{
		Year:     year,
		Estimate: estimate,
		Lower:    estimate - margin,
		Upper:    estimate + margin,
	}
}
