// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package app

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/artifacts"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/genre"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

// App holds the loaded artifacts and the services built on them.
type App struct {
	Config          *config.Config
	Catalog         *catalog.Catalog
	Matrix          *catalog.SimilarityMatrix
	TMDB            *tmdb.Client
	Recommender     *recommend.Recommender
	Recommendations *recommend.Service
	Genres          *genre.Browser
}

// FetchArtifacts downloads any configured artifact that is missing locally.
func FetchArtifacts(ctx context.Context, cfg *config.ArtifactsConfig) ([]artifacts.Result, error) {
	return artifacts.NewFetcher(cfg.DownloadTimeout).EnsureAll(ctx, artifacts.SpecsFromConfig(cfg))
}

// New fetches and loads both artifacts, then builds the recommendation and
// genre services. Without a TMDB API key posters and genre browsing are
// disabled but recommendations still work.
func New(ctx context.Context, cfg *config.Config, opts ...tmdb.Option) (*App, error) {
	if _, err := FetchArtifacts(ctx, &cfg.Artifacts); err != nil {
		return nil, fmt.Errorf("fetch artifacts: %w", err)
	}

	cat, sim, err := catalog.Load(cfg.Artifacts.CatalogPath, cfg.Artifacts.SimilarityPath)
	if err != nil {
		return nil, fmt.Errorf("load artifacts: %w", err)
	}
	metrics.SetCatalogSize(cat.Len())

	rec, err := recommend.NewRecommender(cat, sim, cfg.Recommend.TopK)
	if err != nil {
		return nil, err
	}

	client := tmdb.New(&cfg.TMDB, opts...)
	if !client.Enabled() {
		logging.Warn().Msg("TMDB API key not configured; posters and genre browsing disabled")
	}

	return &App{
		Config:          cfg,
		Catalog:         cat,
		Matrix:          sim,
		TMDB:            client,
		Recommender:     rec,
		Recommendations: recommend.NewService(rec, client),
		Genres:          genre.NewBrowser(client, cfg.Recommend.GenrePages, cfg.Recommend.TopK),
	}, nil
}

// DefaultGenre resolves the configured default genre, falling back to
// genre.DefaultName when the configured value is unknown.
func (a *App) DefaultGenre() genre.Genre {
	if g, ok := genre.Lookup(a.Config.Recommend.DefaultGenre); ok {
		return g
	}
	g, _ := genre.Lookup(genre.DefaultName)
	return g
}
