/*
 * Copyright 2025 The RuleGo Authors.
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

// Package cache provides an in-memory TTL cache with background expiry.
package cache

import (
	"strings"
	"sync"
	"time"
)

// gcBatchSize 每次加写锁删除的过期key数量
const gcBatchSize = 300

// Cache is a concurrent map of keys to values with an optional time to live.
// Expired entries are invisible to readers and removed by a background collector
// that runs only while expirable entries exist.
type Cache[V any] struct {
	items      map[string]entry[V]
	mu         sync.RWMutex
	stopGc     chan struct{}
	ticker     *time.Ticker
	gcInterval time.Duration
	now        func() time.Time
}

type entry[V any] struct {
	value V
	// expiration 过期时间UnixNano，0表示不过期
	expiration int64
}

func (e entry[V]) expired(now int64) bool {
	return e.expiration > 0 && now > e.expiration
}

// New creates a cache collecting expired entries every gcInterval, defaulting to 5 minutes.
func New[V any](gcInterval time.Duration) *Cache[V] {
	c := &Cache[V]{
		items:      make(map[string]entry[V]),
		gcInterval: time.Minute * 5,
		now:        time.Now,
	}
	if gcInterval > 0 {
		c.gcInterval = gcInterval
	}
	return c
}

// Set stores value under key. A ttl <= 0 never expires.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	var expiration int64
	if ttl > 0 {
		expiration = c.now().Add(ttl).UnixNano()
	}
	c.mu.Lock()
	c.items[key] = entry[V]{value: value, expiration: expiration}
	shouldStartGC := expiration > 0 && c.ticker == nil
	c.mu.Unlock()

	if shouldStartGC {
		c.StartGC()
	}
}

// Get returns the live value stored under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, found := c.items[key]
	if !found || e.expired(c.now().UnixNano()) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Has reports whether a live value is stored under key.
func (c *Cache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeleteByPrefix removes every key starting with prefix.
func (c *Cache[V]) DeleteByPrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
}

// GetByPrefix returns the live values whose keys start with prefix.
func (c *Cache[V]) GetByPrefix(prefix string) map[string]V {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(map[string]V)
	now := c.now().UnixNano()
	for k, e := range c.items {
		if strings.HasPrefix(k, prefix) && !e.expired(now) {
			result[k] = e.value
		}
	}
	return result
}

// Len returns the number of stored entries, expired ones included until collected.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// StartGC starts the collector if it is not running and some entry can expire.
func (c *Cache[V]) StartGC() {
	c.mu.Lock()
	if c.ticker != nil || !c.hasExpirableLocked() {
		c.mu.Unlock()
		return
	}
	ticker := time.NewTicker(c.gcInterval)
	stop := make(chan struct{})
	c.ticker = ticker
	c.stopGc = stop
	c.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				c.deleteExpired()
			case <-stop:
				ticker.Stop()
				c.mu.Lock()
				if c.ticker == ticker {
					c.ticker = nil
				}
				c.mu.Unlock()
				return
			}
		}
	}()
}

// StopGC stops the collector. It is safe to call more than once.
func (c *Cache[V]) StopGC() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker != nil && c.stopGc != nil {
		select {
		case <-c.stopGc:
		default:
			close(c.stopGc)
		}
	}
}

func (c *Cache[V]) hasExpirableLocked() bool {
	for _, e := range c.items {
		if e.expiration > 0 {
			return true
		}
	}
	return false
}

// deleteExpired collects expired keys under the read lock, then deletes them in batches,
// checking each again since it may have been replaced in between.
func (c *Cache[V]) deleteExpired() {
	now := c.now().UnixNano()
	c.mu.RLock()
	var expiredKeys []string
	for k, e := range c.items {
		if e.expired(now) {
			expiredKeys = append(expiredKeys, k)
		}
	}
	c.mu.RUnlock()

	for i := 0; i < len(expiredKeys); i += gcBatchSize {
		end := i + gcBatchSize
		if end > len(expiredKeys) {
			end = len(expiredKeys)
		}
		c.mu.Lock()
		for _, k := range expiredKeys[i:end] {
			if e, found := c.items[k]; found && e.expired(now) {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}

	c.mu.RLock()
	remaining := c.hasExpirableLocked()
	c.mu.RUnlock()
	if !remaining {
		c.StopGC()
	}
}
