// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

package cache

import (
	"sync"
	"time"
)

// node is a doubly-linked list element. The list runs from most to least
// recently used.
type node[V any] struct {
	key       string
	value     V
	prev      *node[V]
	next      *node[V]
	expiresAt time.Time
}

// LRU is a thread-safe least recently used cache with a per-entry TTL.
// Get, Add and eviction are O(1). Expired entries are dropped lazily on
// access or by CleanupExpired.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*node[V]
	// head and tail are sentinels; head.next is the newest entry.
	head *node[V]
	tail *node[V]

	hits   int64
	misses int64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// New creates a cache holding at most capacity entries for ttl each.
// Non-positive values fall back to 128 entries and 10 minutes.
func New[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = 128
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*node[V], capacity),
		head:     &node[V]{},
		tail:     &node[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	n, ok := c.items[key]
	if !ok {
		c.misses++
		return zero, false
	}
	if c.now().After(n.expiresAt) {
		c.remove(n)
		c.misses++
		return zero, false
	}
	c.moveToFront(n)
	c.hits++
	return n.value, true
}

// Add inserts or replaces key, evicting the least recently used entry when
// the cache is full.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if n, ok := c.items[key]; ok {
		n.value = value
		n.expiresAt = expiresAt
		c.moveToFront(n)
		return
	}

	n := &node[V]{key: key, value: value, expiresAt: expiresAt}
	c.pushFront(n)
	c.items[key] = n

	for len(c.items) > c.capacity {
		c.remove(c.tail.prev)
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.items[key]
	if ok {
		c.remove(n)
	}
	return ok
}

// Len returns the number of entries, including expired ones not yet dropped.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired drops every expired entry and returns how many it removed.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for n := c.tail.prev; n != c.head; {
		prev := n.prev
		if now.After(n.expiresAt) {
			c.remove(n)
			removed++
		}
		n = prev
	}
	return removed
}

// Stats returns hit, miss and size counters.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Size: len(c.items)}
}

// The helpers below must be called with mu held.

func (c *LRU[V]) pushFront(n *node[V]) {
	n.prev = c.head
	n.next = c.head.next
	c.head.next.prev = n
	c.head.next = n
}

func (c *LRU[V]) moveToFront(n *node[V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	c.pushFront(n)
}

func (c *LRU[V]) remove(n *node[V]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	delete(c.items, n.key)
}
