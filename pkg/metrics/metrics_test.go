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

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortalMetrics_Record(t *testing.T) {
	p := SetupPortalMetrics(prometheus.NewRegistry())

	p.ObserveUpstream(http.MethodGet, 200, 10*time.Millisecond)
	p.ObserveUpstream(http.MethodGet, 200, 20*time.Millisecond)
	p.CacheObserver("app_cache")(true)
	p.CacheObserver("app_cache")(false)
	p.PermissionWrite("rollback")
	p.SetEditorSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.UpstreamRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.CacheLookups.WithLabelValues("app_cache", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.CacheLookups.WithLabelValues("app_cache", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.PermissionWrites.WithLabelValues("rollback")))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.EditorSessions))
}

func TestPortalMetrics_NilSafe(t *testing.T) {
	var p *Portal
	assert.NotPanics(t, func() {
		p.ObserveUpstream("GET", 500, time.Second)
		p.CacheObserver("x")(true)
		p.PermissionWrite("ok")
		p.SSORedirect("ok")
		p.SetEditorSessions(1)
	})
}

func TestServer_Handler(t *testing.T) {
	s := NewServer(MetricsConfig{})
	p := NewPortalMetrics(s)
	p.SSORedirect("success")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "portal_sso_redirects_total")
	assert.NoError(t, s.Start(), "disabled server start is a no-op")
}
