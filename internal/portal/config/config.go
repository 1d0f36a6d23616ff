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
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/portal/pkg/cache"
	"github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/i18n"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/metrics"
	"github.com/go-arcade/portal/pkg/pprof"
	"github.com/go-arcade/portal/pkg/trace"
	"github.com/spf13/viper"
)

const envPrefix = "PORTAL"

type UpstreamConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

type SSOConfig struct {
	SecretKey string
}

type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
	LoginPath  string
	CacheTTL   time.Duration
}

type PermissionConfig struct {
	// IncludeRoleId sends role_id in the hak-akses PUT body
	IncludeRoleId bool
	SessionTTL    time.Duration
	MaxSessions   int
}

type AppConfig struct {
	Log        log.Conf
	Http       http.Http
	Upstream   UpstreamConfig
	Cache      cache.Conf
	Redis      cache.Redis
	SSO        SSOConfig
	Session    SessionConfig
	Permission PermissionConfig
	Metrics    metrics.MetricsConfig
	Pprof      pprof.Conf
	Trace      trace.Conf
	I18n       i18n.Conf
}

var (
	cfg  AppConfig
	mu   sync.RWMutex
	once sync.Once
)

func NewConf(confDir string) AppConfig {
	once.Do(func() {
		loaded, err := LoadConfigFile(confDir)
		if err != nil {
			panic(fmt.Sprintf("load config file error: %s", err))
		}
		mu.Lock()
		cfg = loaded
		mu.Unlock()
	})
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.path", "./logs")
	v.SetDefault("log.filename", "portal.log")
	v.SetDefault("log.level", "info")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.accessLog", true)
	v.SetDefault("http.exposeMetrics", true)
	v.SetDefault("http.allowOrigins", []string{"*"})

	v.SetDefault("upstream.baseUrl", "http://localhost:8000")
	v.SetDefault("upstream.timeout", "15s")
	v.SetDefault("upstream.retryCount", 3)
	v.SetDefault("upstream.retryWait", "200ms")

	v.SetDefault("cache.mode", "local")
	v.SetDefault("cache.localMaxBytes", 32*1024*1024)
	v.SetDefault("redis.mode", "single")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.keyPrefix", "portal:")

	v.SetDefault("sso.secretKey", "")

	v.SetDefault("session.cookieName", "token")
	v.SetDefault("session.maxAge", "168h")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.loginPath", "/auth/login")
	v.SetDefault("session.cacheTTL", "1h")

	v.SetDefault("permission.includeRoleId", true)
	v.SetDefault("permission.sessionTTL", "30m")
	v.SetDefault("permission.maxSessions", 1024)

	v.SetDefault("metrics.enable", false)
	v.SetDefault("pprof.enable", false)
	v.SetDefault("trace.enabled", false)
	v.SetDefault("i18n.defaultLanguage", "id")
	v.SetDefault("i18n.languages", []string{"id", "en"})
}

// LoadConfigFile load config file
func LoadConfigFile(confDir string) (AppConfig, error) {
	var loaded AppConfig

	config := viper.New()
	setDefaults(config)
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()

	config.SetConfigFile(confDir)
	if err := config.ReadInConfig(); err != nil {
		return loaded, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := config.Unmarshal(&loaded); err != nil {
		return loaded, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}

	config.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration changed, reloading", "file", e.Name)
		var next AppConfig
		if err := config.Unmarshal(&next); err != nil {
			log.Errorw("failed to unmarshal configuration file", "error", err)
			return
		}
		mu.Lock()
		cfg = next
		mu.Unlock()
	})
	config.WatchConfig()

	log.Infow("config file loaded", "path", confDir)
	return loaded, nil
}

// Current returns the last loaded configuration, including hot reloads
func Current() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
