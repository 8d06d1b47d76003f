/*
 * Copyright 2025 Tripwise Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cache provides a small in-memory cache with per-entry expiry,
// used by the travel tools to avoid recomputing search results for
// identical parameters within a TTL window.
package cache

import (
	"sync"
	"time"
)

const DefaultTTL = time.Hour

type entry struct {
	value    any
	expireAt time.Time
}

// ExpiringCache is a string-keyed cache with a fixed default TTL.
// Expired entries are evicted lazily on read; there is no background
// sweep and no size bound.
type ExpiringCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// New creates a cache whose entries expire ttl after being set.
// A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration) *ExpiringCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ExpiringCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the value stored under key. A read at or after the entry's
// expiry behaves as a miss and removes the entry.
func (c *ExpiringCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expireAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with expiry now+TTL, overwriting any
// previous value and expiry for the same key.
func (c *ExpiringCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:    value,
		expireAt: c.now().Add(c.ttl),
	}
}

// Clear drops all entries.
func (c *ExpiringCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Len reports the number of stored entries, expired ones included.
func (c *ExpiringCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
