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

package middleware

import (
	"strings"
	"time"

	"github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

type writerFunc func(p []byte) (int, error)

func (w writerFunc) Write(p []byte) (int, error) {
	return w(p)
}

// excludedPaths 不需要记录日志的路径
var excludedPaths = []string{
	"/health",
	"/metrics",
	"/debug/pprof/*",
}

func skipAccessLog(path string) bool {
	for _, rule := range excludedPaths {
		if prefix, ok := strings.CutSuffix(rule, "/*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if path == rule {
			return true
		}
	}
	return false
}

// AccessLogMiddleware writes one debug line per request.
// Bodies and cookies are not logged since they carry credentials.
func AccessLogMiddleware(httpConfig *http.Http) fiber.Handler {
	if httpConfig != nil && !httpConfig.AccessLog {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return logger.New(logger.Config{
		TimeFormat: time.RFC3339Nano,
		TimeZone:   "Local",
		Format:     "rid:[${locals:request_id}] ip:[${locals:ip}] method:[${method}] path:[${path}] status:[${status}] latency:[${latency}] query:[${queryParams}] error:[${error}] ua:[${ua}]",
		Next: func(c *fiber.Ctx) bool {
			return skipAccessLog(c.Path())
		},
		Output: writerFunc(func(p []byte) (int, error) {
			log.Debug(strings.TrimSpace(string(p)))
			return len(p), nil
		}),
	})
}
