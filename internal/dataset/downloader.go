package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// Downloader fetches the two raw source files. It is the offline batch
// refresh step; nothing at request time touches the network.
type Downloader struct {
	client     *http.Client
	co2URL     string
	energyURL  string
	co2Path    string
	energyPath string
	logger     *slog.Logger
}

// NewDownloader creates a downloader writing co2Path and energyPath.
func NewDownloader(co2URL, energyURL, co2Path, energyPath string, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		client:     &http.Client{Timeout: 5 * time.Minute},
		co2URL:     co2URL,
		energyURL:  energyURL,
		co2Path:    co2Path,
		energyPath: energyPath,
		logger:     logger,
	}
}

// Fetch downloads both raw sources concurrently. Either failure aborts the
// whole refresh; files are written atomically so a partial download never
// replaces an existing good copy.
func (d *Downloader) Fetch(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return d.fetchOne(ctx, "co2", d.co2URL, d.co2Path) })
	g.Go(func() error { return d.fetchOne(ctx, "energy", d.energyURL, d.energyPath) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("refresh raw data: %w", err)
	}
	d.logger.InfoContext(ctx, "raw data refresh completed")
	return nil
}

func (d *Downloader) fetchOne(ctx context.Context, name, url, path string) error {
	d.logger.InfoContext(ctx, "downloading raw source", "source", name, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", name, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s source: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s source: unexpected status %s", name, resp.Status)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	written, err := io.Copy(tmp, resp.Body)
	if err != nil {
		return fmt.Errorf("write %s source: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	d.logger.InfoContext(ctx, "raw source saved",
		"source", name,
		"path", path,
		"bytes", written,
	)
	return nil
}
