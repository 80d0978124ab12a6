// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(capacity int, ttl time.Duration) (*LRU[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	c := New[string](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_BasicOperations(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(3, time.Minute)
	c.Add("a", "1")
	c.Add("b", "2")
	c.Add("c", "3")

	for key, want := range map[string]string{"a": "1", "b": "2", "c": "3"} {
		got, ok := c.Get(key)
		if !ok || got != want {
			t.Errorf("Get(%q) = %q, %v; want %q, true", key, got, ok, want)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	c.Add("a", "updated")
	if got, _ := c.Get("a"); got != "updated" {
		t.Errorf("Get(a) after replace = %q", got)
	}
	if c.Len() != 3 {
		t.Errorf("replace should not grow the cache, Len() = %d", c.Len())
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(3, time.Minute)
	c.Add("a", "1")
	c.Add("b", "2")
	c.Add("c", "3")

	c.Get("a")
	c.Add("d", "4")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should still be cached", key)
		}
	}
}

func TestLRU_Expiration(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache(10, time.Minute)
	c.Add("old", "1")
	clock.Advance(30 * time.Second)
	c.Add("new", "2")
	clock.Advance(45 * time.Second)

	if _, ok := c.Get("old"); ok {
		t.Error("old entry should have expired")
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("new entry should still be live")
	}

	clock.Advance(time.Minute)
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLRU_RemoveAndStats(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(5, time.Minute)
	c.Add("a", "1")

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	c.Add("b", "2")
	c.Get("b")
	c.Get("missing")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Size != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, size 1", stats)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := New[int](0, 0)
	if c.capacity != 128 {
		t.Errorf("capacity = %d, want 128", c.capacity)
	}
	if c.ttl != 10*time.Minute {
		t.Errorf("ttl = %v, want 10m", c.ttl)
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := New[int](50, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%75)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity 50", c.Len())
	}
}
