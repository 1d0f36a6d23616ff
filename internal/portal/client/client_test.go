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

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *metrics.Portal) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	m := metrics.SetupPortalMetrics(prometheus.NewRegistry())
	return New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, m), m
}

func TestClient_AttachesBearerAndDecodes(t *testing.T) {
	c, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("app_id"))
		_, _ = w.Write([]byte(`{"menus":[{"nama":"A"}]}`))
	})

	var out struct {
		Menus []struct {
			Nama string `json:"nama"`
		} `json:"menus"`
	}
	ctx := WithToken(context.Background(), "tkn")
	require.NoError(t, c.Get(ctx, "/api/portal/menu", url.Values{"app_id": {"2"}}, &out))
	assert.Equal(t, "A", out.Menus[0].Nama)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("GET", "200")))
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.Post(context.Background(), "/api/auth/logout", nil, nil))
}

func TestClient_UnauthorizedOutsideLogin(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Token expired"}`))
	})

	err := c.Get(WithToken(context.Background(), "old"), "/api/portal/manajemen-user/users", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Token expired", Message(err))

	err = c.Post(context.Background(), "/api/auth/login", map[string]string{"username": "x"}, nil)
	assert.False(t, errors.Is(err, ErrUnauthorized), "401 on login is a failed login, not an expired session")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestClient_ErrorWithoutMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := c.Put(context.Background(), "/api/portal/settings/desktop", map[string]string{}, nil)
	assert.Equal(t, "Request failed with status code 502", Message(err))
	assert.Equal(t, "fallback", MessageOr(err, "fallback"))
}

func TestClient_SendsJSONBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Admin", body["nama"])
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{}`))
	})
	require.NoError(t, c.Post(context.Background(), "/api/portal/manajemen-role/roles", map[string]any{"nama": "Admin"}, nil))
}

func TestClient_NetworkError(t *testing.T) {
	c := New(config.UpstreamConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, nil)
	err := c.Get(context.Background(), "/api/portal/menu", nil, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.NotEmpty(t, Message(err))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Unknown error", Message(nil))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "Request failed with status code 404", Message(&APIError{Status: 404}))
}
