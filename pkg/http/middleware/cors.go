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

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var (
	allowMethods  = "GET, POST, PUT, DELETE, OPTIONS"
	allowHeaders  = "Origin, X-Requested-With, Content-Type, Accept, Authorization, X-Request-Id"
	exposeHeaders = "Content-Length, Content-Language, Content-Type, X-Request-Id"
)

// CorsMiddleware 跨域中间件
// Credentials are only allowed for an explicit origin list.
func CorsMiddleware(origins []string) fiber.Handler {
	conf := cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  allowMethods,
		AllowHeaders:  allowHeaders,
		ExposeHeaders: exposeHeaders,
	}
	if len(origins) > 0 && !(len(origins) == 1 && origins[0] == "*") {
		conf.AllowOrigins = strings.Join(origins, ", ")
		conf.AllowCredentials = true
	}
	return cors.New(conf)
}
