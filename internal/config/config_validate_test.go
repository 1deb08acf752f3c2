// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
		{
			name:    "rate limit zero",
			mutate:  func(c *Config) { c.Security.RateLimitReqs = 0 },
			wantErr: "RATE_LIMIT_REQUESTS",
		},
		{
			name: "rate limit zero but disabled",
			mutate: func(c *Config) {
				c.Security.RateLimitReqs = 0
				c.Security.RateLimitDisabled = true
			},
		},
		{
			name:    "bad cors origin",
			mutate:  func(c *Config) { c.Security.CORSOrigins = []string{"example.com"} },
			wantErr: "CORS_ORIGINS",
		},
		{
			name:    "missing catalog path",
			mutate:  func(c *Config) { c.Artifacts.CatalogPath = "" },
			wantErr: "CATALOG_PATH",
		},
		{
			name:    "bad similarity url",
			mutate:  func(c *Config) { c.Artifacts.SimilarityURL = "ftp://host/file" },
			wantErr: "SIMILARITY_URL",
		},
		{
			name:   "artifact url with path and query",
			mutate: func(c *Config) { c.Artifacts.CatalogURL = "https://example.com/files/movies.json?dl=1" },
		},
		{
			name:    "zero attempts",
			mutate:  func(c *Config) { c.TMDB.MaxAttempts = 0 },
			wantErr: "TMDB_MAX_ATTEMPTS",
		},
		{
			name: "max delay below base",
			mutate: func(c *Config) {
				c.TMDB.RetryBaseDelay = time.Second
				c.TMDB.RetryMaxDelay = time.Millisecond
			},
			wantErr: "retry delays",
		},
		{
			name:    "top k above max",
			mutate:  func(c *Config) { c.Recommend.TopK = 60 },
			wantErr: "RECOMMEND_TOP_K",
		},
		{
			name:    "zero genre pages",
			mutate:  func(c *Config) { c.Recommend.GenrePages = 0 },
			wantErr: "RECOMMEND_GENRE_PAGES",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
