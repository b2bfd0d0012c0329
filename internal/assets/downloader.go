// Package assets downloads remote binary assets referenced by extracted
// records into the persisted file tree.
package assets

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Downloader fetches single remote resources to local paths.
type Downloader struct {
	httpClient *http.Client
}

func NewDownloader() *Downloader {
	return &Downloader{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads url to destPath. On a non-success response or a transport
// failure the partially written destination file is removed before the error
// is returned, so a failed fetch never leaves a truncated artifact behind.
func (d *Downloader) Fetch(url, destPath string) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "PortfolioMigrator/1.0")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(destPath)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(destPath)
		return err
	}

	return nil
}
