// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting via environment variables
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	srv := http.Server{Addr: cfg.Server.Addr()}
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds request throttling and CORS settings.
// There is no user authentication; the only credential is the TMDB API key.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ArtifactsConfig locates the two precomputed artifacts.
//
// When a path does not exist locally, the artifact is downloaded once from
// its URL. A Google Drive file id may be given instead of a full URL.
type ArtifactsConfig struct {
	CatalogPath       string        `koanf:"catalog_path"`
	SimilarityPath    string        `koanf:"similarity_path"`
	CatalogURL        string        `koanf:"catalog_url"`
	SimilarityURL     string        `koanf:"similarity_url"`
	CatalogDriveID    string        `koanf:"catalog_drive_id"`
	SimilarityDriveID string        `koanf:"similarity_drive_id"`
	DownloadTimeout   time.Duration `koanf:"download_timeout"`
}

// TMDBConfig holds The Movie Database client settings.
// An empty APIKey disables posters and genre browsing.
type TMDBConfig struct {
	APIKey       string `koanf:"api_key"`
	BaseURL      string `koanf:"base_url"`
	ImageBaseURL string `koanf:"image_base_url"`
	Language     string `koanf:"language"`
	UserAgent    string `koanf:"user_agent"`

	// Per-attempt request timeout.
	Timeout time.Duration `koanf:"timeout"`

	// Retry policy.
	MaxAttempts    int           `koanf:"max_attempts"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay"`
	RetryMaxDelay  time.Duration `koanf:"retry_max_delay"`

	// Outbound rate limit (requests per second, token bucket burst).
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	PosterCacheTTL     time.Duration `koanf:"poster_cache_ttl"`
	GenreCacheTTL      time.Duration `koanf:"genre_cache_ttl"`
	CacheSize          int           `koanf:"cache_size"`
	CacheSweepInterval time.Duration `koanf:"cache_sweep_interval"`
}

// Enabled reports whether an API key is configured.
func (t TMDBConfig) Enabled() bool {
	return t.APIKey != ""
}

// RecommendConfig holds recommendation and browsing limits.
type RecommendConfig struct {
	// TopK is the number of results returned when the caller does not ask for a size.
	TopK int `koanf:"top_k"`
	// MaxK caps caller-supplied result sizes.
	MaxK int `koanf:"max_k"`
	// GenrePages is how many discover pages are merged per genre.
	GenrePages int `koanf:"genre_pages"`
	// DefaultGenre is preselected on the web page.
	DefaultGenre string `koanf:"default_genre"`
}

// Load loads configuration using Koanf with layered sources.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
