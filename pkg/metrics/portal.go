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
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Portal groups the collectors of the portal service.
// A nil *Portal is valid and records nothing.
type Portal struct {
	UpstreamRequests *prometheus.CounterVec
	UpstreamLatency  *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
	PermissionWrites *prometheus.CounterVec
	SSORedirects     *prometheus.CounterVec
	EditorSessions   prometheus.Gauge
}

// SetupPortalMetrics creates and registers the portal collectors
func SetupPortalMetrics(registry prometheus.Registerer) *Portal {
	p := &Portal{
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_upstream_requests_total",
				Help: "Upstream API requests by method and status code",
			},
			[]string{"method", "status"},
		),
		UpstreamLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_upstream_request_duration_seconds",
				Help:    "Upstream API request latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"method"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_cache_lookups_total",
				Help: "Session cache lookups by cache name and result",
			},
			[]string{"cache", "result"},
		),
		PermissionWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_permission_writes_total",
				Help: "Permission matrix writes by outcome",
			},
			[]string{"outcome"},
		),
		SSORedirects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_sso_redirects_total",
				Help: "SSO hand-off attempts by outcome",
			},
			[]string{"outcome"},
		),
		EditorSessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "portal_permission_editor_sessions",
				Help: "Open permission editor sessions",
			},
		),
	}

	if registry != nil {
		registry.MustRegister(
			p.UpstreamRequests,
			p.UpstreamLatency,
			p.CacheLookups,
			p.PermissionWrites,
			p.SSORedirects,
			p.EditorSessions,
		)
	}
	return p
}

// ObserveUpstream records one upstream call
func (p *Portal) ObserveUpstream(method string, status int, took time.Duration) {
	if p == nil {
		return
	}
	p.UpstreamRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	p.UpstreamLatency.WithLabelValues(method).Observe(took.Seconds())
}

// CacheObserver returns a hit/miss callback for the named cache
func (p *Portal) CacheObserver(name string) func(hit bool) {
	return func(hit bool) {
		if p == nil {
			return
		}
		result := "miss"
		if hit {
			result = "hit"
		}
		p.CacheLookups.WithLabelValues(name, result).Inc()
	}
}

// PermissionWrite records a persisted or rolled back matrix write
func (p *Portal) PermissionWrite(outcome string) {
	if p == nil {
		return
	}
	p.PermissionWrites.WithLabelValues(outcome).Inc()
}

// SSORedirect records an SSO hand-off outcome
func (p *Portal) SSORedirect(outcome string) {
	if p == nil {
		return
	}
	p.SSORedirects.WithLabelValues(outcome).Inc()
}

// SetEditorSessions reports the number of open editor sessions
func (p *Portal) SetEditorSessions(n int) {
	if p == nil {
		return
	}
	p.EditorSessions.Set(float64(n))
}
