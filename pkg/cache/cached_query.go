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
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/portal/pkg/log"
)

// QueryFunc loads the value behind a cache key.
type QueryFunc[T any] func(ctx context.Context, params ...any) (T, error)

// KeyFunc defines a function that generates cache key from parameters
type KeyFunc func(params ...any) string

// CachedQuery provides a generic cache-aside implementation.
// It reads the cache first and falls back to the query on a miss.
type CachedQuery[T any] struct {
	cache     ICache
	keyFunc   KeyFunc
	queryFunc QueryFunc[T]
	ttl       time.Duration
	logPrefix string
	observe   func(hit bool)
}

// CachedQueryOption configures CachedQuery behavior
type CachedQueryOption[T any] func(*CachedQuery[T])

// WithTTL sets the cache expiration time
func WithTTL[T any](ttl time.Duration) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.ttl = ttl
	}
}

// WithLogPrefix sets the log prefix for debugging
func WithLogPrefix[T any](prefix string) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.logPrefix = prefix
	}
}

// WithObserver is called with the outcome of every cache lookup.
func WithObserver[T any](fn func(hit bool)) CachedQueryOption[T] {
	return func(cq *CachedQuery[T]) {
		cq.observe = fn
	}
}

// NewCachedQuery creates a new CachedQuery instance; the default TTL is one hour.
func NewCachedQuery[T any](
	cache ICache,
	keyFunc KeyFunc,
	queryFunc QueryFunc[T],
	opts ...CachedQueryOption[T],
) *CachedQuery[T] {
	cq := &CachedQuery[T]{
		cache:     cache,
		keyFunc:   keyFunc,
		queryFunc: queryFunc,
		ttl:       time.Hour,
		logPrefix: "[CachedQuery]",
	}

	for _, opt := range opts {
		opt(cq)
	}

	return cq
}

// Key returns the cache key for params.
func (cq *CachedQuery[T]) Key(params ...any) string {
	return cq.keyFunc(params...)
}

// Get returns the cached value or queries and caches it.
func (cq *CachedQuery[T]) Get(ctx context.Context, params ...any) (T, error) {
	if result, ok := cq.Peek(ctx, params...); ok {
		return result, nil
	}
	return cq.Refresh(ctx, params...)
}

// Peek returns the cached value without querying.
func (cq *CachedQuery[T]) Peek(ctx context.Context, params ...any) (T, bool) {
	var zero T
	if cq.cache == nil {
		return zero, false
	}
	cacheKey := cq.keyFunc(params...)

	data, err := cq.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Warnw(cq.logPrefix+" cache get error", "key", cacheKey, "error", err)
		}
		cq.record(false)
		return zero, false
	}

	var result T
	if err := sonic.Unmarshal(data, &result); err != nil {
		log.Warnw(cq.logPrefix+" failed to unmarshal cached data", "key", cacheKey, "error", err)
		cq.record(false)
		return zero, false
	}
	log.Debugw(cq.logPrefix+" cache hit", "key", cacheKey)
	cq.record(true)
	return result, true
}

// Refresh always queries and replaces the cached value on success.
// A failed query leaves the previous entry untouched.
func (cq *CachedQuery[T]) Refresh(ctx context.Context, params ...any) (T, error) {
	var zero T
	if cq.queryFunc == nil {
		return zero, errors.New(cq.logPrefix + " query function is not set")
	}
	result, err := cq.queryFunc(ctx, params...)
	if err != nil {
		return zero, fmt.Errorf("query %s: %w", cq.keyFunc(params...), err)
	}
	cq.Set(ctx, result, params...)
	return result, nil
}

// Set stores value under the key for params.
func (cq *CachedQuery[T]) Set(ctx context.Context, value T, params ...any) {
	if cq.cache == nil {
		return
	}
	cacheKey := cq.keyFunc(params...)
	data, err := sonic.Marshal(value)
	if err != nil {
		log.Warnw(cq.logPrefix+" failed to marshal result for caching", "key", cacheKey, "error", err)
		return
	}
	if err := cq.cache.Set(ctx, cacheKey, data, cq.ttl); err != nil {
		log.Warnw(cq.logPrefix+" failed to cache result", "key", cacheKey, "error", err)
		return
	}
	log.Debugw(cq.logPrefix+" cached result", "key", cacheKey)
}

// Invalidate removes the cached data
func (cq *CachedQuery[T]) Invalidate(ctx context.Context, params ...any) error {
	if cq.cache == nil {
		return nil
	}
	cacheKey := cq.keyFunc(params...)
	if err := cq.cache.Invalidate(ctx, cacheKey); err != nil {
		log.Warnw(cq.logPrefix+" failed to invalidate cache", "key", cacheKey, "error", err)
		return err
	}
	log.Debugw(cq.logPrefix+" cache invalidated", "key", cacheKey)
	return nil
}

func (cq *CachedQuery[T]) record(hit bool) {
	if cq.observe != nil {
		cq.observe(hit)
	}
}
