// Habitline - Habit and Reading Tracker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/habitline

/*
Package cache provides a generic in-memory LRU cache with TTL expiration.

The API layer uses it to keep recently served media decoded in memory, so
repeated logo and cover requests skip the BadgerDB lookup and the base64
decode. Media keys are content hashes, which means a cached entry can never
go stale; the TTL only bounds how long cold entries hold memory.

# Usage

	c := cache.New[mediastore.Media](64, 10*time.Minute)
	if m, ok := c.Get(key); ok {
		return m
	}
	c.Add(key, decoded)

# Thread Safety

All methods are safe for concurrent use. Every operation, including Get,
takes an exclusive lock because a hit reorders the list.
*/
package cache
