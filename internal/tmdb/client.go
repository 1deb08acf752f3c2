// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/httpclient"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage     = "en-US"

	// DetailBaseURL is the public movie page prefix.
	DetailBaseURL = "https://www.themoviedb.org/movie/"

	// NoID marks a movie without a TMDB id.
	NoID = -1

	breakerName   = "tmdb-api"
	posterCache   = "poster"
	discoverCache = "discover"
)

var (
	// ErrDisabled is returned when no API key is configured.
	ErrDisabled = errors.New("tmdb: no API key configured")

	// ErrUnavailable is returned when the circuit is open.
	ErrUnavailable = errors.New("tmdb: temporarily unavailable")
)

// Movie is one entry of a discover page.
type Movie struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Name       string `json:"name,omitempty"`
	PosterPath string `json:"poster_path,omitempty"`
}

// Response fields are decoded one at a time so that a wrongly typed field
// only loses that value, not the whole response.
type movieDetails struct {
	PosterPath json.RawMessage `json:"poster_path"`
}

type discoverPage struct {
	Page    int               `json:"page"`
	Results []json.RawMessage `json:"results"`
}

type discoverKey struct {
	genreID int
	page    int
}

// Client talks to the TMDB v3 API.
//
// All calls share one rate limiter and one circuit breaker. Poster and
// discover answers are cached; only definitive answers (2xx, or a 4xx other
// than 429) are stored.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string

	http     *httpclient.Client
	limiter  *rate.Limiter
	breaker  *breaker
	posters  *cache.LRU[int, string]
	discover *cache.LRU[discoverKey, []Movie]
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	breaker    BreakerConfig
}

// WithHTTPClient sets the transport-level client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithBreaker overrides the circuit breaker thresholds.
func WithBreaker(bc BreakerConfig) Option {
	return func(o *clientOptions) { o.breaker = bc }
}

// New creates a TMDB client from configuration. A client without an API key
// is valid; it reports Enabled() == false and never touches the network.
func New(cfg *config.TMDBConfig, opts ...Option) *Client {
	o := clientOptions{breaker: DefaultBreakerConfig()}
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := strings.TrimRight(orDefault(cfg.BaseURL, DefaultBaseURL), "/")
	imageBaseURL := strings.TrimRight(orDefault(cfg.ImageBaseURL, DefaultImageBaseURL), "/")

	policy := httpclient.DefaultPolicy()
	if cfg.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.RetryBaseDelay > 0 {
		policy.BaseDelay = cfg.RetryBaseDelay
	}
	if cfg.RetryMaxDelay > 0 {
		policy.MaxDelay = cfg.RetryMaxDelay
	}
	if cfg.Timeout > 0 {
		policy.AttemptTimeout = cfg.Timeout
	}

	httpOpts := []httpclient.Option{}
	if cfg.UserAgent != "" {
		httpOpts = append(httpOpts, httpclient.WithUserAgent(cfg.UserAgent))
	}
	if o.httpClient != nil {
		httpOpts = append(httpOpts, httpclient.WithHTTPClient(o.httpClient))
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 20
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	c := &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		language:     orDefault(cfg.Language, DefaultLanguage),
		http:         httpclient.New("tmdb", policy, httpOpts...),
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		breaker:      newBreaker(breakerName, o.breaker),
		posters:      cache.NewLRU[int, string](cfg.CacheSize, cfg.PosterCacheTTL),
		discover:     cache.NewLRU[discoverKey, []Movie](cfg.CacheSize, cfg.GenreCacheTTL),
	}
	return c
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// BreakerState returns "closed", "half-open" or "open".
func (c *Client) BreakerState() string {
	return c.breaker.state()
}

// DetailURL returns the public TMDB page for id, or "" when id is unknown.
func DetailURL(id int) string {
	if id < 0 {
		return ""
	}
	return DetailBaseURL + strconv.Itoa(id)
}

// ImageURL joins a poster_path onto the image base, or returns "" for an empty path.
func (c *Client) ImageURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	if !strings.HasPrefix(posterPath, "/") {
		posterPath = "/" + posterPath
	}
	return c.imageBaseURL + posterPath
}

// PosterURL returns the full poster URL for a movie id. A movie without a
// poster yields "" and a nil error. Negative ids are never looked up.
func (c *Client) PosterURL(ctx context.Context, id int) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if id < 0 {
		return "", nil
	}

	if poster, ok := c.posters.Get(id); ok {
		metrics.RecordCacheLookup(posterCache, true)
		return poster, nil
	}
	metrics.RecordCacheLookup(posterCache, false)

	var details movieDetails
	status, err := c.get(ctx, "movie", c.movieURL(id), &details)
	if err != nil {
		return "", err
	}

	poster := ""
	if isOK(status) {
		poster = c.ImageURL(stringField(details.PosterPath))
	}
	c.posters.Set(id, poster)
	return poster, nil
}

// Discover returns one page of popular movies in a genre, most popular first.
func (c *Client) Discover(ctx context.Context, genreID, page int) ([]Movie, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if page < 1 {
		page = 1
	}

	key := discoverKey{genreID: genreID, page: page}
	if movies, ok := c.discover.Get(key); ok {
		metrics.RecordCacheLookup(discoverCache, true)
		return cloneMovies(movies), nil
	}
	metrics.RecordCacheLookup(discoverCache, false)

	var body discoverPage
	status, err := c.get(ctx, "discover", c.discoverURL(genreID, page), &body)
	if err != nil {
		return nil, err
	}

	var movies []Movie
	if isOK(status) {
		movies = toMovies(body.Results)
	}
	c.discover.Set(key, movies)
	return cloneMovies(movies), nil
}

// CleanupExpired sweeps both caches and returns the number of entries removed.
func (c *Client) CleanupExpired() int {
	posters := c.posters.CleanupExpired()
	metrics.RecordCacheSweep(posterCache, posters, c.posters.Len())

	pages := c.discover.CleanupExpired()
	metrics.RecordCacheSweep(discoverCache, pages, c.discover.Len())

	return posters + pages
}

// CacheStats returns hit and miss counters for both caches.
func (c *Client) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		posterCache:   c.posters.Stats(),
		discoverCache: c.discover.Stats(),
	}
}

// get waits on the limiter and performs one retried GET under the breaker.
// A non-nil error means the answer is not definitive and must not be cached.
func (c *Client) get(ctx context.Context, endpoint, rawURL string, v any) (int, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		metrics.RecordTMDBRequest(endpoint, "error", time.Since(start))
		return 0, fmt.Errorf("tmdb %s: rate limiter: %w", endpoint, err)
	}

	status, err := castResult[int](c.breaker.execute(func() (any, error) {
		status, err := c.http.GetJSON(ctx, rawURL, v)
		if err != nil {
			return status, err
		}
		// Non-retryable 5xx such as 501 still counts against the circuit
		if status >= http.StatusInternalServerError {
			return status, fmt.Errorf("HTTP %d", status)
		}
		return status, nil
	}))

	outcome := "ok"
	switch {
	case err != nil && isRejected(err):
		outcome = "rejected"
		err = fmt.Errorf("tmdb %s: %w: %v", endpoint, ErrUnavailable, err)
	case err != nil:
		outcome = "error"
		logging.Warn().Str("endpoint", endpoint).Err(err).Msg("TMDB request failed")
		err = fmt.Errorf("tmdb %s: %w", endpoint, err)
	case !isOK(status):
		outcome = "not_found"
		logging.Debug().Str("endpoint", endpoint).Int("status", status).Msg("TMDB returned no data")
	}
	metrics.RecordTMDBRequest(endpoint, outcome, time.Since(start))

	return status, err
}

func (c *Client) movieURL(id int) string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	return c.baseURL + "/movie/" + strconv.Itoa(id) + "?" + q.Encode()
}

func (c *Client) discoverURL(genreID, page int) string {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	q.Set("sort_by", "popularity.desc")
	q.Set("include_adult", "false")
	q.Set("include_video", "false")
	q.Set("page", strconv.Itoa(page))
	q.Set("with_genres", strconv.Itoa(genreID))
	return c.baseURL + "/discover/movie?" + q.Encode()
}

func toMovies(items []json.RawMessage) []Movie {
	movies := make([]Movie, 0, len(items))
	for _, raw := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		movies = append(movies, Movie{
			ID:         idField(fields["id"]),
			Title:      stringField(fields["title"]),
			Name:       stringField(fields["name"]),
			PosterPath: stringField(fields["poster_path"]),
		})
	}
	return movies
}

// stringField returns raw as a string, or "" when it is missing, null or not a string.
func stringField(raw json.RawMessage) string {
	var v string
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return ""
	}
	return v
}

// idField returns raw as an integer id, or NoID when it is missing, null or not an integer.
func idField(raw json.RawMessage) int {
	if strings.TrimSpace(string(raw)) == "null" {
		return NoID
	}
	var v int
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil || v < 0 {
		return NoID
	}
	return v
}

func cloneMovies(movies []Movie) []Movie {
	if movies == nil {
		return nil
	}
	out := make([]Movie, len(movies))
	copy(out, movies)
	return out
}

func isOK(status int) bool {
	return status >= 200 && status < 300
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
