// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/reelmatch/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	page          http.Handler
}

// NewRouter creates a Router. page serves the HTML interface at "/" and may
// be nil to run the API alone.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, page http.Handler) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		page:          page,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to all routes, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).MethodNotAllowed()
	})

	// promhttp negotiates its own compression.
	r.Handle("/metrics", promhttp.Handler())

	perf := router.handler.PerformanceMonitor()

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compression)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(APISecurityHeaders())
			r.Use(middleware.PrometheusMetrics)
			r.Use(perf.Middleware)

			r.Route("/health", func(r chi.Router) {
				r.Get("/live", router.handler.HealthLive)
				r.Get("/ready", router.handler.HealthReady)
				r.Get("/performance", router.handler.Performance)
			})

			r.Get("/movies", router.handler.Movies)
			r.Get("/recommendations", router.handler.Recommendations)
			r.Get("/genres", router.handler.Genres)
			r.Get("/genres/{genre}/movies", router.handler.GenreMovies)
		})

		if router.page != nil {
			r.With(middleware.PrometheusMetrics).Handle("/", router.page)
		}
	})

	return r
}
