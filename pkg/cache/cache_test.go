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

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(ttl time.Duration) (*ExpiringCache, *time.Time) {
	c := New(ttl)
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestGetWithinTTL(t *testing.T) {
	c, now := newTestCache(10 * time.Second)

	c.Set("k", "v")

	*now = now.Add(9 * time.Second)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestGetAfterTTLMissesAndEvicts(t *testing.T) {
	c, now := newTestCache(10 * time.Second)

	c.Set("k", "v")

	*now = now.Add(11 * time.Second)
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be evicted on read")
}

func TestGetAtExactExpiryMisses(t *testing.T) {
	c, now := newTestCache(10 * time.Second)

	c.Set("k", "v")

	*now = now.Add(10 * time.Second)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestSetOverwritesValueAndExpiry(t *testing.T) {
	c, now := newTestCache(10 * time.Second)

	c.Set("k", "old")
	*now = now.Add(8 * time.Second)
	c.Set("k", "new")

	// 8s after the second Set the first expiry would already have passed.
	*now = now.Add(8 * time.Second)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestGetMissingKey(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	require.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestDefaultTTLFallback(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%8)
				c.Set(key, i)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, c.Len())
}
