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

package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/router"
	"github.com/go-arcade/portal/internal/portal/service"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/metrics"
	"github.com/go-arcade/portal/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	HttpApp  *fiber.App
	Logger   *log.Logger
	Metrics  *metrics.Server
	Services *service.Services
	Shutdown *shutdown.Manager
	AppConf  *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

// NewApp builds the fiber app. The tracer provider is only taken so wire
// installs it before the first request.
func NewApp(
	rt *router.Router,
	logger *log.Logger,
	services *service.Services,
	metricsServer *metrics.Server,
	_ *sdktrace.TracerProvider,
	shutdownMgr *shutdown.Manager,
	appConf *config.AppConfig,
) (*App, func(), error) {
	app := &App{
		HttpApp:  rt.Router(),
		Logger:   logger,
		Metrics:  metricsServer,
		Services: services,
		Shutdown: shutdownMgr,
		AppConf:  appConf,
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), appConf.Http.ShutdownWait())
		defer cancel()

		// wait for optimistic writes so their rollbacks are not lost
		if err := services.Permissions.Drain(ctx); err != nil {
			logger.Log.Warnw("permission writes still pending at shutdown", zap.Error(err))
		}
		if err := metricsServer.Stop(ctx); err != nil {
			logger.Log.Warnw("metrics server shutdown error", zap.Error(err))
		}
	}

	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	// Wire build App (所有依赖都由 wire 自动注入)
	return initApp(configFile)
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger.Log
	appConf := app.AppConf

	if err := app.Metrics.Start(); err != nil {
		logger.Errorw("metrics server failed to start", zap.Error(err))
	}

	// set signal listener (graceful shutdown)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// start HTTP server (async)
	go func() {
		addr := appConf.Http.Addr()
		logger.Infow("HTTP listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			logger.Errorw("HTTP listener failed", "address", addr, zap.Error(err))
		}
	}()

	sig := <-quit
	logger.Infof("Received signal: %v, shutting down gracefully...", sig)
	app.Shutdown.Begin()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), appConf.Http.ShutdownWait())
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	cleanup()

	logger.Info("Server shutdown complete")
	_ = log.Sync()
}
