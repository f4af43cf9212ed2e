package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "co2cli/internal/errors"
	"co2cli/internal/cluster"
	"co2cli/internal/forecast"
)

func float64Ptr(v float64) *float64 { return &v }

func TestSaveForecast(t *testing.T) {
	result := &forecast.Result{
		Country: "France",
		Horizon: 2,
		Points: []forecast.Point{
			{Year: 2018, Observed: float64Ptr(100), Estimate: 100, Lower: 98, Upper: 102},
			{Year: 2019, Observed: float64Ptr(110), Estimate: 110, Lower: 108, Upper: 112},
			{Year: 2020, Observed: float64Ptr(120), Estimate: 120, Lower: 118, Upper: 122},
			{Year: 2021, Estimate: 130, Lower: 126, Upper: 134, IsForecast: true},
			{Year: 2022, Estimate: 140, Lower: 135, Upper: 145, IsForecast: true},
		},
	}

	path := filepath.Join(t.TempDir(), "forecast.png")
	require.NoError(t, SaveForecast(result, path))
	assertNonEmptyFile(t, path)
}

func TestSaveForecastEmptyResult(t *testing.T) {
	result := &forecast.Result{
		Country: "Atlantis",
		Horizon: 10,
		Empty:   apperrors.Empty("no data for Atlantis"),
	}

	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, SaveForecast(result, path))
	assertNonEmptyFile(t, path)
}

func TestSaveCluster(t *testing.T) {
	result := &cluster.Result{
		Year: 2020,
		K:    3,
		Assignments: []cluster.Assignment{
			{Country: "Gulfland", ClusterID: 0, Label: cluster.LabelHighFossil, Features: []float64{22, 1, 95, 5, 9e11}},
			{Country: "Hydroria", ClusterID: 1, Label: cluster.LabelLowRenewable, Features: []float64{2, 60, 30, 70, 3e11}},
			{Country: "Midvale", ClusterID: 2, Label: cluster.LabelModerate, Features: []float64{8, 15, 70, 30, 6e11}},
		},
	}

	path := filepath.Join(t.TempDir(), "clusters.png")
	require.NoError(t, SaveCluster(result, path))
	assertNonEmptyFile(t, path)
}

func TestSaveClusterEmptyResult(t *testing.T) {
	result := &cluster.Result{
		Year:  1850,
		K:     3,
		Empty: apperrors.Empty("no complete data available for clustering in 1850"),
	}

	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, SaveCluster(result, path))
	assertNonEmptyFile(t, path)
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
