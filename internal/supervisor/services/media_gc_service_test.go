// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/habitline/internal/mediastore"
)

var _ suture.Service = (*MediaGCService)(nil)

type countingGC struct {
	calls atomic.Int32
	err   error
}

func (c *countingGC) RunGC() error {
	c.calls.Add(1)
	return c.err
}

func TestMediaGCService_RunsOnInterval(t *testing.T) {
	t.Parallel()

	gc := &countingGC{}
	svc := NewMediaGCService(gc, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for gc.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve = %v, want context.Canceled", err)
	}
	if gc.calls.Load() < 3 {
		t.Errorf("RunGC called %d times, want at least 3", gc.calls.Load())
	}
	if svc.Runs() != int64(gc.calls.Load()) {
		t.Errorf("Runs() = %d, calls = %d", svc.Runs(), gc.calls.Load())
	}
}

func TestMediaGCService_GivesUpAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	gc := &countingGC{err: errors.New("disk full")}
	svc := NewMediaGCService(gc, 5*time.Millisecond)

	select {
	case err := <-serveAsync(svc):
		if !errors.Is(err, gc.err) {
			t.Errorf("Serve = %v, want wrapped GC error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after repeated failures")
	}
	if got := gc.calls.Load(); got != maxConsecutiveGCFailures {
		t.Errorf("RunGC called %d times, want %d", got, maxConsecutiveGCFailures)
	}
}

func TestMediaGCService_InMemoryStore(t *testing.T) {
	t.Parallel()

	store, err := mediastore.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	defer func() { _ = store.Close() }()

	svc := NewMediaGCService(store, 5*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve = %v, want deadline exceeded", err)
	}
	if svc.Runs() == 0 {
		t.Error("GC should have run at least once")
	}
}

func TestNewMediaGCService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewMediaGCService(&countingGC{}, 0)
	if svc.interval != 10*time.Minute {
		t.Errorf("interval = %v, want 10m", svc.interval)
	}
	if svc.String() != "media-gc" {
		t.Errorf("String() = %q", svc.String())
	}
}

func serveAsync(svc suture.Service) <-chan error {
	ch := make(chan error, 1)
	go func() { ch <- svc.Serve(context.Background()) }()
	return ch
}
