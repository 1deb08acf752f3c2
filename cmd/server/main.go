// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/app"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
	"github.com/tomtom215/reelmatch/internal/tmdb"
	"github.com/tomtom215/reelmatch/internal/web"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "reelmatch",
		Version:   version,
	})

	startTime := time.Now()
	metrics.SetAppInfo(version)
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Bool("tmdb_enabled", cfg.TMDB.Enabled()).
		Msg("Starting ReelMatch")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logging.Fatal().
			Err(err).
			Str("catalog", cfg.Artifacts.CatalogPath).
			Str("similarity", cfg.Artifacts.SimilarityPath).
			Msg("Failed to load artifacts")
	}

	page, err := web.NewPage(a.Catalog.Titles(), a.Recommendations, a.Genres, a.DefaultGenre())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build web page")
	}

	handler := api.NewHandler(api.Deps{
		Catalog:         a.Catalog,
		Matrix:          a.Matrix,
		Recommendations: a.Recommendations,
		Genres:          a.Genres,
		TMDB:            a.TMDB,
		Performance:     middleware.NewPerformanceMonitor(1000),
		Version:         version,
	})
	chiMw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, chiMw, page)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	if cfg.Server.ShutdownTimeout > 0 {
		treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout + 5*time.Second
	}
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(services.NewJanitorService(
		uptimeSweeper{client: a.TMDB, start: startTime},
		cfg.TMDB.CacheSweepInterval,
	))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("ReelMatch stopped")
}

// uptimeSweeper sweeps the TMDB caches and refreshes the uptime gauge on
// each janitor tick.
type uptimeSweeper struct {
	client *tmdb.Client
	start  time.Time
}

func (s uptimeSweeper) CleanupExpired() int {
	metrics.TrackUptime(s.start)
	return s.client.CleanupExpired()
}
