package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloaderFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/co2.csv":
			w.Write([]byte("country,year,co2\nFrance,2020,120\n"))
		case "/energy.csv":
			w.Write([]byte("country,year\nFrance,2020\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	co2Path := filepath.Join(dir, "raw", "co2.csv")
	energyPath := filepath.Join(dir, "raw", "energy.csv")

	d := NewDownloader(server.URL+"/co2.csv", server.URL+"/energy.csv", co2Path, energyPath, nil)
	require.NoError(t, d.Fetch(context.Background()))

	co2, err := os.ReadFile(co2Path)
	require.NoError(t, err)
	assert.Contains(t, string(co2), "France,2020,120")

	energy, err := os.ReadFile(energyPath)
	require.NoError(t, err)
	assert.Contains(t, string(energy), "France,2020")
}

func TestDownloaderFetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	co2Path := filepath.Join(dir, "co2.csv")
	energyPath := filepath.Join(dir, "energy.csv")

	d := NewDownloader(server.URL+"/co2.csv", server.URL+"/energy.csv", co2Path, energyPath, nil)
	err := d.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")

	// Neither file should exist after a failed refresh
	_, statErr := os.Stat(co2Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloaderDoesNotClobberOnFailure(t *testing.T) {
	dir := t.TempDir()
	co2Path := filepath.Join(dir, "co2.csv")
	energyPath := filepath.Join(dir, "energy.csv")
	require.NoError(t, os.WriteFile(co2Path, []byte("previous good copy"), 0644))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	d := NewDownloader(server.URL+"/co2.csv", server.URL+"/energy.csv", co2Path, energyPath, nil)
	require.Error(t, d.Fetch(context.Background()))

	data, err := os.ReadFile(co2Path)
	require.NoError(t, err)
	assert.Equal(t, "previous good copy", string(data))
}
