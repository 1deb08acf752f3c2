// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/httpclient"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

const (
	// MaxArtifactSize bounds a single download (2GB).
	MaxArtifactSize = 2 << 30

	LabelCatalog    = "catalog"
	LabelSimilarity = "similarity"
)

// ErrNoSource is returned when an artifact is missing locally and has no download URL.
var ErrNoSource = errors.New("artifact missing and no download URL configured")

// Spec names one artifact and where to get it.
type Spec struct {
	Label string
	Path  string
	URL   string
}

// Result reports the outcome of Ensure.
type Result struct {
	Path       string
	Downloaded bool
	Size       int64
}

// Fetcher downloads missing artifacts through a retrying HTTP client.
type Fetcher struct {
	client  *httpclient.Client
	maxSize int64
}

// NewFetcher creates a Fetcher whose attempts each time out after timeout.
func NewFetcher(timeout time.Duration, opts ...httpclient.Option) *Fetcher {
	policy := httpclient.DefaultPolicy()
	if timeout > 0 {
		policy.AttemptTimeout = timeout
	}
	return &Fetcher{
		client:  httpclient.New("artifacts", policy, opts...),
		maxSize: MaxArtifactSize,
	}
}

// DriveURL builds a Google Drive direct-download URL for a shared file id.
func DriveURL(fileID string) string {
	q := url.Values{}
	q.Set("export", "download")
	q.Set("confirm", "t")
	q.Set("id", strings.TrimSpace(fileID))
	return "https://drive.google.com/uc?" + q.Encode()
}

// SpecsFromConfig returns the catalog and similarity specs. A configured URL
// wins over a Drive file id.
func SpecsFromConfig(cfg *config.ArtifactsConfig) []Spec {
	source := func(rawURL, driveID string) string {
		if rawURL != "" {
			return rawURL
		}
		if driveID != "" {
			return DriveURL(driveID)
		}
		return ""
	}
	return []Spec{
		{Label: LabelCatalog, Path: cfg.CatalogPath, URL: source(cfg.CatalogURL, cfg.CatalogDriveID)},
		{Label: LabelSimilarity, Path: cfg.SimilarityPath, URL: source(cfg.SimilarityURL, cfg.SimilarityDriveID)},
	}
}

// EnsureAll runs Ensure for each spec and stops at the first error.
func (f *Fetcher) EnsureAll(ctx context.Context, specs []Spec) ([]Result, error) {
	results := make([]Result, 0, len(specs))
	for _, spec := range specs {
		res, err := f.Ensure(ctx, spec)
		if err != nil {
			return results, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// Ensure makes sure spec.Path exists. An existing file is left untouched.
// Otherwise spec.URL is downloaded into a temp file next to the target and
// renamed into place, so a failed download never leaves a partial artifact.
func (f *Fetcher) Ensure(ctx context.Context, spec Spec) (*Result, error) {
	if info, err := os.Stat(spec.Path); err == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%s artifact %s is a directory", spec.Label, spec.Path)
		}
		return &Result{Path: spec.Path, Size: info.Size()}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s artifact %s: %w", spec.Label, spec.Path, err)
	}

	if spec.URL == "" {
		return nil, fmt.Errorf("%s artifact %s: %w", spec.Label, spec.Path, ErrNoSource)
	}

	logging.Info().Str("artifact", spec.Label).Str("path", spec.Path).Msg("Downloading artifact")
	start := time.Now()

	n, err := f.download(ctx, spec)
	metrics.RecordArtifactDownload(spec.Label, err)
	if err != nil {
		return nil, fmt.Errorf("download %s artifact: %w", spec.Label, err)
	}

	logging.Info().
		Str("artifact", spec.Label).
		Str("path", spec.Path).
		Int64("bytes", n).
		Dur("duration", time.Since(start)).
		Msg("Artifact downloaded")

	return &Result{Path: spec.Path, Downloaded: true, Size: n}, nil
}

func (f *Fetcher) download(ctx context.Context, spec Spec) (int64, error) {
	dir := filepath.Dir(spec.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	var written int64
	err := f.client.Fetch(ctx, spec.URL, func(resp *http.Response) error {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		// Drive answers quota and permission problems with an HTML page
		if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
			return fmt.Errorf("server returned an HTML page instead of the file (check sharing settings or use a direct URL)")
		}

		n, err := writeAtomic(dir, spec.Path, resp.Body, f.maxSize)
		written = n
		return err
	})
	return written, err
}

func writeAtomic(dir, target string, r io.Reader, maxSize int64) (int64, error) {
	tmpFile, err := os.CreateTemp(dir, ".reelmatch-download-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op after a successful rename
	}()

	n, err := io.Copy(tmpFile, io.LimitReader(r, maxSize+1))
	if err != nil {
		return n, fmt.Errorf("write download: %w", err)
	}
	if n > maxSize {
		return n, fmt.Errorf("download exceeds maximum size (%d bytes)", maxSize)
	}
	if n == 0 {
		return 0, fmt.Errorf("download is empty")
	}

	if err := tmpFile.Sync(); err != nil {
		return n, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return n, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return n, fmt.Errorf("move download into place: %w", err)
	}
	return n, nil
}
