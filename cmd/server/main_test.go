// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/tmdb"
)

func TestUptimeSweeper(t *testing.T) {
	s := uptimeSweeper{
		client: tmdb.New(&config.TMDBConfig{}),
		start:  time.Now().Add(-time.Minute),
	}

	if removed := s.CleanupExpired(); removed != 0 {
		t.Errorf("removed = %d, want 0 on empty caches", removed)
	}
	if up := testutil.ToFloat64(metrics.AppUptime); up < 60 {
		t.Errorf("uptime = %v, want >= 60", up)
	}
}
