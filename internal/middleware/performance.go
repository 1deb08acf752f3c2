// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged.
const DefaultSlowRequestThreshold = time.Second

// RequestSample is one observed request.
type RequestSample struct {
	Route      string        `json:"route"`
	Method     string        `json:"method"`
	Duration   time.Duration `json:"duration"`
	StatusCode int           `json:"status_code"`
	Timestamp  time.Time     `json:"timestamp"`
}

// EndpointStats summarises the samples of one method and route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int     `json:"request_count"`
	ErrorCount   int     `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        float64 `json:"p50_ms"`
	P95MS        float64 `json:"p95_ms"`
	P99MS        float64 `json:"p99_ms"`
	MaxMS        float64 `json:"max_ms"`
}

// PerformanceMonitor keeps the most recent samples in a fixed-size ring.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	samples       []RequestSample
	next          int
	full          bool
	slowThreshold time.Duration
}

// NewPerformanceMonitor keeps up to capacity samples.
func NewPerformanceMonitor(capacity int) *PerformanceMonitor {
	if capacity <= 0 {
		capacity = 1000
	}
	return &PerformanceMonitor{
		samples:       make([]RequestSample, capacity),
		slowThreshold: DefaultSlowRequestThreshold,
	}
}

// SetSlowThreshold changes the slow-request log threshold; zero disables it.
func (pm *PerformanceMonitor) SetSlowThreshold(d time.Duration) {
	pm.mu.Lock()
	pm.slowThreshold = d
	pm.mu.Unlock()
}

// Record adds a sample, overwriting the oldest when full.
func (pm *PerformanceMonitor) Record(s RequestSample) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.samples[pm.next] = s
	pm.next++
	if pm.next == len(pm.samples) {
		pm.next = 0
		pm.full = true
	}
}

// Len returns the number of retained samples.
func (pm *PerformanceMonitor) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	if pm.full {
		return len(pm.samples)
	}
	return pm.next
}

// Recent returns up to n samples, oldest first.
func (pm *PerformanceMonitor) Recent(n int) []RequestSample {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	all := pm.orderedLocked()
	if n < len(all) {
		all = all[len(all)-n:]
	}
	return all
}

// Stats aggregates the retained samples per endpoint, busiest first.
func (pm *PerformanceMonitor) Stats() []EndpointStats {
	pm.mu.RLock()
	samples := pm.orderedLocked()
	pm.mu.RUnlock()

	durations := make(map[string][]time.Duration)
	errors := make(map[string]int)
	for _, s := range samples {
		key := s.Method + " " + s.Route
		durations[key] = append(durations[key], s.Duration)
		if s.StatusCode >= http.StatusInternalServerError {
			errors[key]++
		}
	}

	stats := make([]EndpointStats, 0, len(durations))
	for endpoint, ds := range durations {
		sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })

		var sum time.Duration
		for _, d := range ds {
			sum += d
		}

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: len(ds),
			ErrorCount:   errors[endpoint],
			AvgMS:        ms(sum / time.Duration(len(ds))),
			P50MS:        ms(percentile(ds, 0.50)),
			P95MS:        ms(percentile(ds, 0.95)),
			P99MS:        ms(percentile(ds, 0.99)),
			MaxMS:        ms(ds[len(ds)-1]),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

// Middleware records one sample per request and logs slow requests.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		route := routeLabel(r)
		pm.Record(RequestSample{
			Route:      route,
			Method:     r.Method,
			Duration:   duration,
			StatusCode: rec.statusCode,
			Timestamp:  start,
		})

		pm.mu.RLock()
		threshold := pm.slowThreshold
		pm.mu.RUnlock()

		if threshold > 0 && duration > threshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", duration).
				Dur("threshold", threshold).
				Msg("Slow request detected")
		}
	})
}

func (pm *PerformanceMonitor) orderedLocked() []RequestSample {
	if !pm.full {
		out := make([]RequestSample, pm.next)
		copy(out, pm.samples[:pm.next])
		return out
	}
	out := make([]RequestSample, 0, len(pm.samples))
	out = append(out, pm.samples[pm.next:]...)
	out = append(out, pm.samples[:pm.next]...)
	return out
}

// percentile uses nearest-rank on a sorted slice.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
