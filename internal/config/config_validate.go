// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateArtifacts(); err != nil {
		return err
	}

	if err := c.validateTMDB(); err != nil {
		return err
	}

	return c.validateRecommend()
}

// validateServer validates HTTP server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got: %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got: %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got: %v", c.Server.ShutdownTimeout)
	}
	return nil
}

// validateSecurity validates rate limiting and CORS settings
func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got: %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got: %v", c.Security.RateLimitWindow)
		}
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS_ORIGINS entry must be * or an http(s) origin, got: %s", origin)
		}
	}
	return nil
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got: %s", c.Logging.Format)
	}
}

// validateArtifacts validates artifact locations
func (c *Config) validateArtifacts() error {
	if c.Artifacts.CatalogPath == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.Artifacts.SimilarityPath == "" {
		return fmt.Errorf("SIMILARITY_PATH is required")
	}
	if c.Artifacts.CatalogURL != "" {
		if err := validateDownloadURL(c.Artifacts.CatalogURL, "CATALOG_URL"); err != nil {
			return err
		}
	}
	if c.Artifacts.SimilarityURL != "" {
		if err := validateDownloadURL(c.Artifacts.SimilarityURL, "SIMILARITY_URL"); err != nil {
			return err
		}
	}
	if c.Artifacts.DownloadTimeout <= 0 {
		return fmt.Errorf("ARTIFACT_DOWNLOAD_TIMEOUT must be positive, got: %v", c.Artifacts.DownloadTimeout)
	}
	return nil
}

// validateTMDB validates the metadata client. The API key itself is optional.
func (c *Config) validateTMDB() error {
	if err := validateDownloadURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateDownloadURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive, got: %v", c.TMDB.Timeout)
	}
	if c.TMDB.MaxAttempts < 1 || c.TMDB.MaxAttempts > 10 {
		return fmt.Errorf("TMDB_MAX_ATTEMPTS must be between 1 and 10, got: %d", c.TMDB.MaxAttempts)
	}
	if c.TMDB.RetryBaseDelay <= 0 || c.TMDB.RetryMaxDelay < c.TMDB.RetryBaseDelay {
		return fmt.Errorf("TMDB retry delays invalid: base=%v max=%v", c.TMDB.RetryBaseDelay, c.TMDB.RetryMaxDelay)
	}
	if c.TMDB.RequestsPerSecond <= 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be positive, got: %v", c.TMDB.RequestsPerSecond)
	}
	if c.TMDB.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be at least 1, got: %d", c.TMDB.Burst)
	}
	if c.TMDB.PosterCacheTTL <= 0 || c.TMDB.GenreCacheTTL <= 0 {
		return fmt.Errorf("TMDB cache TTLs must be positive")
	}
	if c.TMDB.CacheSize < 1 {
		return fmt.Errorf("TMDB_CACHE_SIZE must be at least 1, got: %d", c.TMDB.CacheSize)
	}
	if c.TMDB.CacheSweepInterval <= 0 {
		return fmt.Errorf("TMDB_CACHE_SWEEP_INTERVAL must be positive, got: %v", c.TMDB.CacheSweepInterval)
	}
	return nil
}

// validateRecommend validates result size limits
func (c *Config) validateRecommend() error {
	if c.Recommend.MaxK < 1 || c.Recommend.MaxK > 100 {
		return fmt.Errorf("RECOMMEND_MAX_K must be between 1 and 100, got: %d", c.Recommend.MaxK)
	}
	if c.Recommend.TopK < 1 || c.Recommend.TopK > c.Recommend.MaxK {
		return fmt.Errorf("RECOMMEND_TOP_K must be between 1 and %d, got: %d", c.Recommend.MaxK, c.Recommend.TopK)
	}
	if c.Recommend.GenrePages < 1 || c.Recommend.GenrePages > 10 {
		return fmt.Errorf("RECOMMEND_GENRE_PAGES must be between 1 and 10, got: %d", c.Recommend.GenrePages)
	}
	return nil
}
