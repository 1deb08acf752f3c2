// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

func TestHealthEndpoints(t *testing.T) {
	_, router := newTestFixture(t, &fakeTMDB{enabled: true})

	code, live := doGet[map[string]any](t, router, "/api/v1/health/live")
	if code != http.StatusOK || live.Data["alive"] != true {
		t.Errorf("live: status = %d, data = %v", code, live.Data)
	}

	code, ready := doGet[ReadinessStatus](t, router, "/api/v1/health/ready")
	if code != http.StatusOK {
		t.Fatalf("ready: status = %d", code)
	}
	got := ready.Data
	if !got.Ready || got.Version != "test" || got.CatalogSize != 6 || got.MatrixDim != 6 {
		t.Errorf("ready = %+v", got)
	}
	if !got.TMDBEnabled || got.BreakerState != "closed" {
		t.Errorf("tmdb status = %v/%q", got.TMDBEnabled, got.BreakerState)
	}
	if _, ok := got.Caches["poster"]; !ok {
		t.Errorf("caches = %v", got.Caches)
	}
}

func TestHealthReady_NotLoaded(t *testing.T) {
	h := NewHandler(Deps{})
	rec := httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ErrCodeServiceUnavailable) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestPerformanceEndpoint(t *testing.T) {
	_, router := newTestFixture(t, &fakeTMDB{})

	for i := 0; i < 3; i++ {
		doGet[any](t, router, "/api/v1/genres")
	}
	_, env := doGet[PerformanceReport](t, router, "/api/v1/health/performance")
	if env.Data.Samples < 3 {
		t.Fatalf("samples = %d", env.Data.Samples)
	}
	found := false
	for _, s := range env.Data.Endpoints {
		if s.Endpoint == "GET /api/v1/genres" && s.RequestCount == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("endpoints = %+v", env.Data.Endpoints)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	_, router := newTestFixture(t, &fakeTMDB{})

	code, env := doGet[any](t, router, "/api/v1/nope")
	if code != http.StatusNotFound || env.Error.Code != ErrCodeNotFound {
		t.Errorf("not found: %d %+v", code, env.Error)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/genres", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rec.Code)
	}
}

func TestRouter_SecurityHeadersAndCompression(t *testing.T) {
	_, router := newTestFixture(t, &fakeTMDB{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing nosniff header")
	}
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Error("API response not compressed")
	}
}

func TestRouter_Metrics(t *testing.T) {
	_, router := newTestFixture(t, &fakeTMDB{})
	doGet[any](t, router, "/api/v1/genres")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `api_requests_total{endpoint="/api/v1/genres"`) {
		t.Error("metrics missing api_requests_total for /api/v1/genres")
	}
}

func TestRouter_Page(t *testing.T) {
	h, _ := newTestFixture(t, &fakeTMDB{})
	page := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>page</html>"))
	})
	router := NewRouter(h, nil, page).SetupChi()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "<html>page</html>" {
		t.Errorf("page: %d %q", rec.Code, rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	h, _ := newTestFixture(t, &fakeTMDB{})
	mw := NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	}))
	router := NewRouter(h, mw, nil).SetupChi()

	before := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues(rateLimitScope))

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
		req.RemoteAddr = "203.0.113.7:4321"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests && !strings.Contains(rec.Body.String(), ErrCodeTooManyRequests) {
			t.Errorf("429 body = %s", rec.Body.String())
		}
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
	if got := testutil.ToFloat64(metrics.APIRateLimitHits.WithLabelValues(rateLimitScope)); got != before+1 {
		t.Errorf("rate limit hits = %v, want %v", got, before+1)
	}
}

func TestCORS(t *testing.T) {
	h, _ := newTestFixture(t, &fakeTMDB{})
	mw := NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&config.SecurityConfig{
		CORSOrigins:       []string{"https://movies.example.com"},
		RateLimitDisabled: true,
	}))
	router := NewRouter(h, mw, nil).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/genres", nil)
	req.Header.Set("Origin", "https://movies.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://movies.example.com" {
		t.Errorf("allowed origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unexpected allow origin %q", got)
	}
}
