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

package router

import (
	"io/fs"
	"strings"

	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/service"
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/http/middleware"
	"github.com/go-arcade/portal/pkg/i18n"
	"github.com/go-arcade/portal/pkg/metrics"
	"github.com/go-arcade/portal/pkg/pprof"
	"github.com/go-arcade/portal/pkg/shutdown"
	"github.com/go-arcade/portal/pkg/version"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

type Router struct {
	Http     *httpx.Http
	Session  config.SessionConfig
	I18n     i18n.Conf
	Locales  fs.FS
	Services *service.Services
	Metrics  *metrics.Server
	Pprof    pprof.Conf
	Shutdown *shutdown.Manager

	validate *validator.Validate
	notices  *noticeStream
}

func NewRouter(
	httpConf *httpx.Http,
	sessionConf config.SessionConfig,
	i18nConf i18n.Conf,
	pprofConf pprof.Conf,
	locales fs.FS,
	services *service.Services,
	metricsServer *metrics.Server,
	shutdownMgr *shutdown.Manager,
) *Router {
	if sessionConf.LoginPath == "" {
		sessionConf.LoginPath = "/auth/login"
	}
	rt := &Router{
		Http:     httpConf,
		Session:  sessionConf,
		I18n:     i18nConf,
		Locales:  locales,
		Services: services,
		Metrics:  metricsServer,
		Pprof:    pprofConf,
		Shutdown: shutdownMgr,
		validate: newValidator(),
	}
	rt.notices = newNoticeStream(rt)
	return rt
}

func (rt *Router) Router() *fiber.App {
	read, write, idle := rt.Http.Timeouts()
	app := fiber.New(fiber.Config{
		AppName:               "portal",
		DisableStartupMessage: true,
		ErrorHandler:          httpx.ErrorHandler,
		BodyLimit:             rt.Http.BodyLimit,
		ReadTimeout:           read,
		WriteTimeout:          write,
		IdleTimeout:           idle,
	})

	app.Use(middleware.RequestMiddleware())
	app.Use(middleware.RealIPMiddleware())
	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.TraceMiddleware())
	app.Use(middleware.CorsMiddleware(rt.Http.AllowOrigins))
	app.Use(pprof.Middleware(rt.Pprof))
	if rt.Http.AccessLog {
		app.Use(middleware.AccessLogMiddleware(rt.Http))
	}
	if rt.Locales != nil {
		app.Use(i18n.New(rt.I18n, rt.Locales))
	}
	app.Use(middleware.UnifiedResponseMiddleware())
	app.Use(rt.sessionMiddleware())

	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Metrics.Handler()))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		if rt.Shutdown != nil && rt.Shutdown.Draining() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("draining")
		}
		return c.SendString("ok")
	})
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	rt.authRouter(app)
	rt.portalRouter(app)

	admin := app.Group("/administrator", rt.requireSession)
	{
		rt.userRouter(admin)
		rt.roleRouter(admin)
		rt.permissionRouter(admin)
		rt.settingsRouter(admin)
	}

	return app
}

// wantsHTML tells browser navigations apart from API calls
func wantsHTML(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}
