// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Artifacts: ArtifactsConfig{
			CatalogPath:     "data/movies.json",
			SimilarityPath:  "data/similarity.arrow",
			DownloadTimeout: 5 * time.Minute,
		},
		TMDB: TMDBConfig{
			APIKey:             "", // Optional - posters and genre browsing are disabled without it
			BaseURL:            "https://api.themoviedb.org/3",
			ImageBaseURL:       "https://image.tmdb.org/t/p/w500",
			Language:           "en-US",
			UserAgent:          "reelmatch/1.0",
			Timeout:            8 * time.Second,
			MaxAttempts:        3,
			RetryBaseDelay:     500 * time.Millisecond,
			RetryMaxDelay:      8 * time.Second,
			RequestsPerSecond:  20,
			Burst:              10,
			PosterCacheTTL:     24 * time.Hour,
			GenreCacheTTL:      6 * time.Hour,
			CacheSize:          5000,
			CacheSweepInterval: 10 * time.Minute,
		},
		Recommend: RecommendConfig{
			TopK:         5,
			MaxK:         50,
			GenrePages:   2,
			DefaultGenre: "Action",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// TMDB_API_KEY -> tmdb.api_key
	// HTTP_PORT -> server.port
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok {
			continue
		}
		if strVal == "" {
			// An explicitly empty variable clears the list
			if err := k.Set(path, []string{}); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercase environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Security
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Artifacts
	"catalog_path":              "artifacts.catalog_path",
	"similarity_path":           "artifacts.similarity_path",
	"catalog_url":               "artifacts.catalog_url",
	"similarity_url":            "artifacts.similarity_url",
	"catalog_drive_id":          "artifacts.catalog_drive_id",
	"similarity_drive_id":       "artifacts.similarity_drive_id",
	"artifact_download_timeout": "artifacts.download_timeout",

	// TMDB
	"tmdb_api_key":              "tmdb.api_key",
	"tmdb_base_url":             "tmdb.base_url",
	"tmdb_image_base_url":       "tmdb.image_base_url",
	"tmdb_language":             "tmdb.language",
	"tmdb_user_agent":           "tmdb.user_agent",
	"tmdb_timeout":              "tmdb.timeout",
	"tmdb_max_attempts":         "tmdb.max_attempts",
	"tmdb_retry_base_delay":     "tmdb.retry_base_delay",
	"tmdb_retry_max_delay":      "tmdb.retry_max_delay",
	"tmdb_requests_per_second":  "tmdb.requests_per_second",
	"tmdb_burst":                "tmdb.burst",
	"tmdb_poster_cache_ttl":     "tmdb.poster_cache_ttl",
	"tmdb_genre_cache_ttl":      "tmdb.genre_cache_ttl",
	"tmdb_cache_size":           "tmdb.cache_size",
	"tmdb_cache_sweep_interval": "tmdb.cache_sweep_interval",

	// Recommendation
	"recommend_top_k":         "recommend.top_k",
	"recommend_max_k":         "recommend.max_k",
	"recommend_genre_pages":   "recommend.genre_pages",
	"recommend_default_genre": "recommend.default_genre",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are ignored by koanf.
//
// Examples:
//   - TMDB_API_KEY -> tmdb.api_key
//   - HTTP_PORT -> server.port
//   - CATALOG_PATH -> artifacts.catalog_path
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
