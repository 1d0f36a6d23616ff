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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery_MissFetchesThenServesCache(t *testing.T) {
	var calls atomic.Int32
	q := NewListQuery("items", newLQ(), []string{}, func(context.Context, ...any) ([]string, error) {
		calls.Add(1)
		return []string{"a", "b"}, nil
	})
	ctx := tokenCtx("tok")

	st, err := q.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, st.Data)

	st, err = q.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, st.Data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestListQuery_DeduplicatesConcurrentReads(t *testing.T) {
	var calls atomic.Int32
	gate := make(chan struct{})
	q := NewListQuery("items", newLQ(), []string{}, func(context.Context, ...any) ([]string, error) {
		calls.Add(1)
		<-gate
		return []string{"x"}, nil
	})
	ctx := tokenCtx("tok")

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, err := q.Refresh(ctx)
			assert.NoError(t, err)
			assert.Equal(t, []string{"x"}, st.Data)
		}()
	}
	// let the callers pile up on the shared fetch
	time.Sleep(50 * time.Millisecond)
	assert.True(t, q.Snapshot(ctx).IsValidating)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, q.Snapshot(ctx).IsValidating)
}

func TestListQuery_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	conf := newLQ()
	conf.RetryCount = 3
	q := NewListQuery("items", conf, []string{}, func(context.Context, ...any) ([]string, error) {
		if calls.Add(1) < 3 {
			return nil, errors.New("connection reset")
		}
		return []string{"ok"}, nil
	})

	st, err := q.Read(tokenCtx("tok"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, st.Data)
	assert.Equal(t, int32(3), calls.Load())
}

func TestListQuery_UnauthorizedIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	conf := newLQ()
	conf.RetryCount = 3
	q := NewListQuery("items", conf, []string{}, func(context.Context, ...any) ([]string, error) {
		calls.Add(1)
		return nil, &client.APIError{Status: 401, Path: "/api/portal/manajemen-user/users"}
	})

	st, err := q.Read(tokenCtx("tok"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{}, st.Data)
}

func TestListQuery_RefreshFailureKeepsStaleData(t *testing.T) {
	var fail atomic.Bool
	q := NewListQuery("items", newLQ(), []string{}, func(context.Context, ...any) ([]string, error) {
		if fail.Load() {
			return nil, &client.APIError{Status: 500, Message: "server sedang sibuk"}
		}
		return []string{"old"}, nil
	})
	ctx := tokenCtx("tok")

	_, err := q.Read(ctx)
	require.NoError(t, err)

	fail.Store(true)
	st, err := q.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, []string{"old"}, st.Data)
	assert.Equal(t, "server sedang sibuk", st.Error)

	// a cached read still reports the last error
	st, err = q.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "server sedang sibuk", st.Error)

	fail.Store(false)
	st, err = q.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, st.Error)
}

func TestListQuery_SessionsDoNotShareEntries(t *testing.T) {
	var calls atomic.Int32
	q := NewListQuery("items", newLQ(), "", func(ctx context.Context, _ ...any) (string, error) {
		calls.Add(1)
		return client.TokenFrom(ctx), nil
	})

	a, err := q.Read(tokenCtx("alice"))
	require.NoError(t, err)
	b, err := q.Read(tokenCtx("bob"))
	require.NoError(t, err)

	assert.Equal(t, "alice", a.Data)
	assert.Equal(t, "bob", b.Data)
	assert.Equal(t, int32(2), calls.Load())

	require.NoError(t, q.Invalidate(tokenCtx("alice")))
	_, ok := q.Peek(tokenCtx("alice"))
	assert.False(t, ok)
	_, ok = q.Peek(tokenCtx("bob"))
	assert.True(t, ok)
}

func TestListQuery_ParamIsPartOfKey(t *testing.T) {
	q := NewListQuery("ttd", newLQ(), 0, func(_ context.Context, params ...any) (int, error) {
		return params[0].(int) * 10, nil
	})
	ctx := tokenCtx("tok")

	one, err := q.Read(ctx, 1)
	require.NoError(t, err)
	two, err := q.Read(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, one.Data)
	assert.Equal(t, 20, two.Data)
}

func TestListQuery_SnapshotBeforeFetch(t *testing.T) {
	q := NewListQuery("items", newLQ(), []string{}, func(context.Context, ...any) ([]string, error) {
		return []string{"a"}, nil
	})
	st := q.Snapshot(tokenCtx("tok"))
	assert.Equal(t, []string{}, st.Data)
	assert.False(t, st.IsLoading)
}
