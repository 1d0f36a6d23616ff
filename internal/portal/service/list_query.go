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

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/session"
	"github.com/go-arcade/portal/pkg/cache"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/retry"
	"golang.org/x/sync/singleflight"
)

// ListState is what a screen renders for one list
type ListState[T any] struct {
	Data         T      `json:"data"`
	Error        string `json:"error,omitempty"`
	IsLoading    bool   `json:"isLoading"`
	IsValidating bool   `json:"isValidating"`
}

// ListQueryConfig shared settings of the list queries
type ListQueryConfig struct {
	Cache      cache.ICache
	TTL        time.Duration
	RetryCount int
	RetryWait  time.Duration
	Observer   func(name string) func(hit bool)
}

// ListQuery wraps a remote list behind a session scoped cache entry.
// Concurrent reads of one key share a single upstream fetch.
type ListQuery[T any] struct {
	name  string
	empty T
	cq    *cache.CachedQuery[T]
	group singleflight.Group
	retry []retry.Option

	mu       sync.Mutex
	errs     map[string]error
	inFlight map[string]int
}

// NewListQuery builds a query named name. empty is served when nothing
// has been fetched yet.
func NewListQuery[T any](name string, conf ListQueryConfig, empty T, fetch func(ctx context.Context, params ...any) (T, error)) *ListQuery[T] {
	q := &ListQuery[T]{
		name:     name,
		empty:    empty,
		errs:     make(map[string]error),
		inFlight: make(map[string]int),
	}

	attempts := conf.RetryCount + 1
	if conf.RetryCount <= 0 {
		attempts = 1
	}
	wait := conf.RetryWait
	if wait <= 0 {
		wait = 200 * time.Millisecond
	}
	q.retry = []retry.Option{
		retry.WithMaxAttempts(attempts),
		retry.WithBackoff(retry.Exponential(wait, 5*time.Second)),
		retry.WithRetryIf(retryable),
		retry.WithOnRetry(func(attempt int, err error) {
			log.Debugw("list fetch retry", "list", name, "attempt", attempt, "error", err)
		}),
	}

	opts := []cache.CachedQueryOption[T]{cache.WithLogPrefix[T]("[" + name + "]")}
	if conf.TTL > 0 {
		opts = append(opts, cache.WithTTL[T](conf.TTL))
	}
	if conf.Observer != nil {
		opts = append(opts, cache.WithObserver[T](conf.Observer(name)))
	}

	q.cq = cache.NewCachedQuery(conf.Cache, q.key, func(ctx context.Context, params ...any) (T, error) {
		var out T
		err := retry.Do(ctx, func(ctx context.Context) error {
			var ferr error
			out, ferr = fetch(ctx, params[1:]...)
			return ferr
		}, q.retry...)
		return out, err
	}, opts...)
	return q
}

// session expiry and local bugs are not worth another round trip
func retryable(err error) bool {
	if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return false
	}
	return true
}

// params[0] is always the session scope
func (q *ListQuery[T]) key(params ...any) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, q.name)
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ":")
}

func scopeOf(ctx context.Context) string {
	return session.Fingerprint(client.TokenFrom(ctx))
}

func (q *ListQuery[T]) scoped(ctx context.Context, params []any) []any {
	return append([]any{scopeOf(ctx)}, params...)
}

// Read serves the cached list, fetching it on a miss. The returned error
// is the fetch error, if a fetch happened and failed.
func (q *ListQuery[T]) Read(ctx context.Context, params ...any) (ListState[T], error) {
	all := q.scoped(ctx, params)
	if data, ok := q.cq.Peek(ctx, all...); ok {
		return q.state(q.cq.Key(all...), data), nil
	}
	return q.fetch(ctx, all)
}

// Refresh forces a fetch. On failure the stale list stays in place and
// the error is reported with it.
func (q *ListQuery[T]) Refresh(ctx context.Context, params ...any) (ListState[T], error) {
	return q.fetch(ctx, q.scoped(ctx, params))
}

// Snapshot reports the cached state without fetching
func (q *ListQuery[T]) Snapshot(ctx context.Context, params ...any) ListState[T] {
	all := q.scoped(ctx, params)
	key := q.cq.Key(all...)
	if data, ok := q.cq.Peek(ctx, all...); ok {
		return q.state(key, data)
	}
	st := q.state(key, q.empty)
	st.IsLoading = st.IsValidating
	return st
}

// Peek returns the cached list only
func (q *ListQuery[T]) Peek(ctx context.Context, params ...any) (T, bool) {
	return q.cq.Peek(ctx, q.scoped(ctx, params)...)
}

// Invalidate drops the cached entry of the calling session
func (q *ListQuery[T]) Invalidate(ctx context.Context, params ...any) error {
	all := q.scoped(ctx, params)
	q.mu.Lock()
	delete(q.errs, q.cq.Key(all...))
	q.mu.Unlock()
	return q.cq.Invalidate(ctx, all...)
}

func (q *ListQuery[T]) fetch(ctx context.Context, all []any) (ListState[T], error) {
	key := q.cq.Key(all...)
	q.track(key, 1)
	defer q.track(key, -1)

	// the shared fetch must not die with the first caller's request
	shared := context.WithoutCancel(ctx)
	v, err, _ := q.group.Do(key, func() (any, error) {
		return q.cq.Refresh(shared, all...)
	})

	q.mu.Lock()
	if err != nil {
		q.errs[key] = err
	} else {
		delete(q.errs, key)
	}
	q.mu.Unlock()

	if err != nil {
		stale, ok := q.cq.Peek(ctx, all...)
		if !ok {
			stale = q.empty
		}
		st := q.state(key, stale)
		st.Error = userMessage(err)
		return st, err
	}
	return q.state(key, v.(T)), nil
}

func (q *ListQuery[T]) track(key string, delta int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.inFlight[key] += delta
	if q.inFlight[key] <= 0 {
		delete(q.inFlight, key)
	}
}

func (q *ListQuery[T]) state(key string, data T) ListState[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	st := ListState[T]{Data: data, IsValidating: q.inFlight[key] > 0}
	if err := q.errs[key]; err != nil {
		st.Error = userMessage(err)
	}
	return st
}
