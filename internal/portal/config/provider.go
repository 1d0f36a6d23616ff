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

package config

import (
	"github.com/go-arcade/portal/pkg/cache"
	"github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/i18n"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/metrics"
	"github.com/go-arcade/portal/pkg/pprof"
	"github.com/go-arcade/portal/pkg/trace"
	"github.com/google/wire"
)

// ProviderSet 提供配置层相关的依赖
var ProviderSet = wire.NewSet(
	ProvideConf,
	ProvideHttpConfig,
	ProvideLogConfig,
	ProvideCacheConfig,
	ProvideMetricsConfig,
	ProvidePprofConfig,
	ProvideTraceConfig,
	ProvideI18nConfig,
	ProvideUpstreamConfig,
	ProvideSSOConfig,
	ProvideSessionConfig,
	ProvidePermissionConfig,
)

// ProvideConf 提供应用配置
func ProvideConf(configPath string) *AppConfig {
	conf := NewConf(configPath)
	return &conf
}

// ProvideHttpConfig 提供 HTTP 配置
func ProvideHttpConfig(appConf *AppConfig) *http.Http {
	httpConfig := &appConf.Http
	httpConfig.SetDefaults()
	return httpConfig
}

// ProvideLogConfig 提供日志配置
func ProvideLogConfig(appConf *AppConfig) *log.Conf {
	return &appConf.Log
}

// ProvideCacheConfig merges the redis section into the cache settings
func ProvideCacheConfig(appConf *AppConfig) cache.Conf {
	conf := appConf.Cache
	conf.Redis = appConf.Redis
	return conf
}

// ProvideMetricsConfig 提供 Metrics 配置
func ProvideMetricsConfig(appConf *AppConfig) metrics.MetricsConfig {
	metricsConfig := appConf.Metrics
	metricsConfig.SetDefaults()
	return metricsConfig
}

func ProvidePprofConfig(appConf *AppConfig) pprof.Conf {
	return appConf.Pprof
}

func ProvideTraceConfig(appConf *AppConfig) trace.Conf {
	return appConf.Trace
}

func ProvideI18nConfig(appConf *AppConfig) i18n.Conf {
	conf := appConf.I18n
	conf.SetDefaults()
	return conf
}

func ProvideUpstreamConfig(appConf *AppConfig) UpstreamConfig {
	return appConf.Upstream
}

func ProvideSSOConfig(appConf *AppConfig) SSOConfig {
	return appConf.SSO
}

func ProvideSessionConfig(appConf *AppConfig) SessionConfig {
	return appConf.Session
}

func ProvidePermissionConfig(appConf *AppConfig) PermissionConfig {
	return appConf.Permission
}
