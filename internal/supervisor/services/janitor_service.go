// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 10 * time.Minute

// Sweeper removes expired cache entries and reports how many it removed.
// Satisfied by *tmdb.Client.
type Sweeper interface {
	CleanupExpired() int
}

// JanitorService periodically sweeps expired cache entries so idle entries
// do not hold memory until they are evicted by LRU pressure.
type JanitorService struct {
	sweeper  Sweeper
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewJanitorService creates a janitor sweeping every interval.
func NewJanitorService(sweeper Sweeper, interval time.Duration) *JanitorService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &JanitorService{
		sweeper:  sweeper,
		interval: interval,
		logger:   logging.WithComponent("cache-janitor"),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service. It sweeps on every tick until ctx is canceled.
func (j *JanitorService) Serve(ctx context.Context) error {
	j.logger.Debug().Dur("interval", j.interval).Msg("Cache janitor started")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *JanitorService) sweep() {
	start := time.Now()
	removed := j.sweeper.CleanupExpired()
	if removed > 0 {
		j.logger.Debug().
			Int("removed", removed).
			Dur("duration", time.Since(start)).
			Msg("Expired cache entries removed")
	}
}

// String names the service in supervisor logs.
func (j *JanitorService) String() string {
	return j.name
}
