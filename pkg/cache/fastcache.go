// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/VictoriaMetrics/fastcache"
)

// FastCacheConfig holds fastcache configuration
type FastCacheConfig struct {
	MaxBytes int // default 16MB
}

// FastCache is an in-process ICache backed by VictoriaMetrics fastcache.
// Expiry is tracked beside the cache and applied lazily on read.
type FastCache struct {
	cache *fastcache.Cache
	ttls  sync.Map // key -> time.Time
	mu    sync.RWMutex
	now   func() time.Time
}

// NewFastCache creates a new FastCache instance
func NewFastCache(conf FastCacheConfig) *FastCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 16 * 1024 * 1024
	}
	return &FastCache{
		cache: fastcache.New(maxBytes),
		now:   time.Now,
	}
}

func (fc *FastCache) Get(ctx context.Context, key string) ([]byte, error) {
	fc.mu.RLock()
	expired := fc.expired(key)
	var value []byte
	if !expired {
		// SetBig is used on write so values above 64KB survive.
		value = fc.cache.GetBig(nil, []byte(key))
	}
	fc.mu.RUnlock()

	if expired {
		fc.dropIfExpired(key)
		return nil, ErrCacheMiss
	}
	if value == nil {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (fc *FastCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.cache.SetBig([]byte(key), value)
	if ttl > 0 {
		fc.ttls.Store(key, fc.now().Add(ttl))
	} else {
		fc.ttls.Delete(key)
	}
	return nil
}

func (fc *FastCache) Invalidate(ctx context.Context, keys ...string) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	for _, key := range keys {
		fc.cache.Del([]byte(key))
		fc.ttls.Delete(key)
	}
	return nil
}

// Clear removes all items from the cache
func (fc *FastCache) Clear() {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.cache.Reset()
	fc.ttls.Range(func(key, _ any) bool {
		fc.ttls.Delete(key)
		return true
	})
}

// Stats returns cache statistics
func (fc *FastCache) Stats() fastcache.Stats {
	var stats fastcache.Stats
	fc.cache.UpdateStats(&stats)
	return stats
}

func (fc *FastCache) dropIfExpired(key string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.expired(key) {
		fc.cache.Del([]byte(key))
		fc.ttls.Delete(key)
	}
}

func (fc *FastCache) expired(key string) bool {
	exp, ok := fc.ttls.Load(key)
	return ok && !fc.now().Before(exp.(time.Time))
}
