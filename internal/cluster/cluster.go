package cluster

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/stat"

	apperrors "co2cli/internal/errors"
	"co2cli/internal/panel"
)

// FeatureNames lists the per-country features used for clustering, in the
// order they appear in Assignment.Features.
var FeatureNames = []string{
	"co2_per_capita",
	"renewables_share_energy",
	"fossil_share_energy",
	"low_carbon_share_energy",
	"gdp",
}

// Semantic labels derived from each country's position relative to the
// included set's mean CO₂ per capita and mean renewables share.
const (
	LabelHighFossil   = "High CO₂, Fossil-heavy"
	LabelLowRenewable = "Low CO₂, Renewable-heavy"
	LabelModerate     = "Moderate CO₂, Balanced Energy"
	LabelUnclassified = "Unclassified"
)

// Request selects the year to cluster and the number of groups.
type Request struct {
	Year int `json:"year"`
	K    int `json:"k" validate:"min=2"`
}

// Assignment is one country's cluster membership together with the feature
// values the chart annotations need.
type Assignment struct {
	Country   string    `json:"country"`
	ClusterID int       `json:"cluster_id"`
	Label     string    `json:"label"`
	Features  []float64 `json:"features"`
}

// Result is the chart-ready outcome of a cluster call. When Empty is
// non-nil no country had a complete feature vector for the year.
type Result struct {
	Year        int                    `json:"year"`
	K           int                    `json:"k"`
	Assignments []Assignment           `json:"assignments,omitempty"`
	Empty       *apperrors.EmptyResult `json:"empty,omitempty"`

	// Means over the included set, re-derived every call; the labeling
	// thresholds and useful for chart reference lines.
	MeanCO2PerCapita    float64 `json:"mean_co2_per_capita"`
	MeanRenewablesShare float64 `json:"mean_renewables_share"`
}

// IsEmpty reports whether the selection produced no usable rows.
func (r *Result) IsEmpty() bool { return r.Empty != nil }

// Engine groups countries by emissions and energy profile for one year.
// Stateless between calls; all per-call derived data is private to the call,
// so the engine is safe for concurrent use over a shared read-only panel.
type Engine struct {
	seed     int64
	maxIter  int
	validate *validator.Validate
	logger   *slog.Logger
}

// NewEngine creates a cluster engine. The seed fixes centroid
// initialization so cluster IDs are reproducible for identical input.
func NewEngine(seed int64, maxIter int, logger *slog.Logger) *Engine {
	if maxIter <= 0 {
		maxIter = 300
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		seed:     seed,
		maxIter:  maxIter,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Cluster standardizes the feature vectors of every country with complete
// data for the year, partitions them into req.K groups, and labels each
// country from its position relative to the included set's means.
func (e *Engine) Cluster(p *panel.Panel, req Request) (*Result, error) {
	if err := e.validate.Struct(req); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return nil, apperrors.NewValidationError("k", "must be at least 2")
		}
		return nil, fmt.Errorf("validate request: %w", err)
	}

	countries, features := extractFeatures(p, req.Year)
	if len(countries) == 0 {
		e.logger.Info("cluster selection has no complete rows", "year", req.Year)
		return &Result{
			Year: req.Year,
			K:    req.K,
			Empty: apperrors.Empty(
				fmt.Sprintf("no complete data available for clustering in %d", req.Year)),
		}, nil
	}
	if len(countries) < req.K {
		return nil, apperrors.NewValidationError("k",
			fmt.Sprintf("only %d countries have complete data for %d, need at least k=%d", len(countries), req.Year, req.K))
	}

	scaled := standardize(features)
	rng := rand.New(rand.NewSource(e.seed))
	assign := kMeans(scaled, req.K, e.maxIter, rng)

	meanCO2, meanRenew := labelThresholds(features)

	assignments := make([]Assignment, len(countries))
	for i, country := range countries {
		assignments[i] = Assignment{
			Country:   country,
			ClusterID: assign[i],
			Label:     label(features[i][0], features[i][1], meanCO2, meanRenew),
			Features:  features[i],
		}
	}

	e.logger.Info("clustering computed",
		"year", req.Year,
		"countries", len(assignments),
		"k", req.K,
	)
	return &Result{
		Year:                req.Year,
		K:                   req.K,
		Assignments:         assignments,
		MeanCO2PerCapita:    meanCO2,
		MeanRenewablesShare: meanRenew,
	}, nil
}

// extractFeatures collects the feature matrix for the year, excluding any
// country with a missing feature. No imputation. Countries are returned in
// sorted order so the matrix layout is deterministic.
func extractFeatures(p *panel.Panel, year int) (countries []string, features [][]float64) {
	rows := p.RowsForYear(year)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Country < rows[j].Country })

	for _, rec := range rows {
		vec := []float64{
			rec.CO2PerCapita,
			rec.RenewablesShareEnergy,
			rec.FossilShareEnergy,
			rec.LowCarbonShareEnergy,
			rec.GDP,
		}
		complete := true
		for _, v := range vec {
			if math.IsNaN(v) {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		countries = append(countries, rec.Country)
		features = append(features, vec)
	}
	return countries, features
}

// labelThresholds computes the mean co2_per_capita and renewables share over
// the included set for the year.
func labelThresholds(features [][]float64) (meanCO2, meanRenew float64) {
	co2 := make([]float64, len(features))
	renew := make([]float64, len(features))
	for i, vec := range features {
		co2[i] = vec[0]
		renew[i] = vec[1]
	}
	return stat.Mean(co2, nil), stat.Mean(renew, nil)
}

// label assigns the semantic category for one country. A country above the
// mean on both axes falls through every historical rule and is reported as
// Unclassified rather than silently bucketed.
func label(co2PerCapita, renewShare, meanCO2, meanRenew float64) string {
	switch {
	case co2PerCapita > meanCO2 && renewShare < meanRenew:
		return LabelHighFossil
	case co2PerCapita < meanCO2 && renewShare > meanRenew:
		return LabelLowRenewable
	case co2PerCapita < meanCO2:
		return LabelModerate
	default:
		return LabelUnclassified
	}
}
