// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) CleanupExpired() int {
	return int(s.calls.Add(1))
}

var _ suture.Service = (*JanitorService)(nil)

func TestJanitorService_Sweeps(t *testing.T) {
	sweeper := &countingSweeper{}
	svc := NewJanitorService(sweeper, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.Now().Add(time.Second)
	for sweeper.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if sweeper.calls.Load() < 3 {
		t.Errorf("sweeps = %d, want >= 3", sweeper.calls.Load())
	}
}

func TestJanitorService_NoSweepBeforeInterval(t *testing.T) {
	sweeper := &countingSweeper{}
	svc := NewJanitorService(sweeper, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v", err)
	}
	if sweeper.calls.Load() != 0 {
		t.Errorf("sweeps = %d, want 0", sweeper.calls.Load())
	}
}

func TestNewJanitorService_DefaultInterval(t *testing.T) {
	svc := NewJanitorService(&countingSweeper{}, 0)
	if svc.interval != DefaultSweepInterval {
		t.Errorf("interval = %v", svc.interval)
	}
	if svc.String() != "cache-janitor" {
		t.Errorf("String() = %q", svc.String())
	}
}
