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

package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock 可控时钟
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestCache(gcInterval time.Duration) (*Cache[string], *clock) {
	c := New[string](gcInterval)
	clk := &clock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.now = clk.now
	return c, clk
}

func TestCache(t *testing.T) {
	c, clk := newTestCache(time.Hour)
	defer c.StopGC()

	c.Set("view:1", "a", time.Minute)
	c.Set("view:2", "b", 0)
	c.Set("other", "c", time.Minute)

	v, ok := c.Get("view:1")
	require.True(t, ok)
	assert.Equal(t, "a", v)
	assert.True(t, c.Has("view:2"))
	assert.False(t, c.Has("missing"))
	assert.Equal(t, map[string]string{"view:1": "a", "view:2": "b"}, c.GetByPrefix("view:"))

	clk.advance(2 * time.Minute)
	_, ok = c.Get("view:1")
	assert.False(t, ok)
	assert.True(t, c.Has("view:2"))
	assert.Equal(t, map[string]string{"view:2": "b"}, c.GetByPrefix("view:"))
	assert.Equal(t, 3, c.Len())

	c.deleteExpired()
	assert.Equal(t, 1, c.Len())

	c.Delete("view:2")
	assert.False(t, c.Has("view:2"))
}

func TestCacheDeleteByPrefix(t *testing.T) {
	c, _ := newTestCache(time.Hour)
	c.Set("prefix_key1", "value1", 0)
	c.Set("prefix_key2", "value2", 0)
	c.Set("other_key", "value3", 0)

	c.DeleteByPrefix("prefix_")
	assert.False(t, c.Has("prefix_key1"))
	assert.False(t, c.Has("prefix_key2"))
	v, ok := c.Get("other_key")
	assert.True(t, ok)
	assert.Equal(t, "value3", v)
}

func TestCacheGC(t *testing.T) {
	c := New[int](10 * time.Millisecond)
	c.Set("forever", 1, 0)
	c.mu.RLock()
	assert.Nil(t, c.ticker)
	c.mu.RUnlock()

	c.Set("short", 2, 20*time.Millisecond)
	assert.Eventually(t, func() bool {
		c.mu.RLock()
		defer c.mu.RUnlock()
		_, found := c.items["short"]
		return !found && c.ticker == nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.True(t, c.Has("forever"))

	// 可以重新启动
	c.Set("again", 3, time.Hour)
	c.mu.RLock()
	assert.NotNil(t, c.ticker)
	c.mu.RUnlock()
	c.StopGC()
	c.StopGC()
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int](time.Millisecond)
	defer c.StopGC()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("k", j, time.Millisecond)
				c.Get("k")
				c.DeleteByPrefix("x")
			}
		}(i)
	}
	wg.Wait()
}
