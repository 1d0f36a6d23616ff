//go:build wireinject
// +build wireinject

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

package main

import (
	"github.com/go-arcade/portal/internal/portal/bootstrap"
	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/repo"
	"github.com/go-arcade/portal/internal/portal/router"
	"github.com/go-arcade/portal/internal/portal/service"
	"github.com/go-arcade/portal/pkg/cache"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/metrics"
	"github.com/go-arcade/portal/pkg/shutdown"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		config.ProviderSet,
		// 日志
		log.ProviderSet,
		// 缓存层
		cache.ProviderSet,
		// 监控
		metrics.ProviderSet,
		// 链路追踪
		traceProviderSet,
		// 优雅退出
		shutdown.ProviderSet,
		// 仓储层
		repo.ProviderSet,
		// 服务层
		service.ProviderSet,
		// 路由层
		router.ProviderSet,
		// 应用层
		bootstrap.NewApp,
	))
}
