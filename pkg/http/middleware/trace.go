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
	"context"

	"github.com/go-arcade/portal/pkg/trace/inject"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// headerCarrier adapts fasthttp request headers to a propagation carrier
type headerCarrier struct {
	h *fasthttp.RequestHeader
}

func (hc headerCarrier) Get(key string) string { return string(hc.h.Peek(key)) }

func (hc headerCarrier) Set(key, value string) { hc.h.Set(key, value) }

func (hc headerCarrier) Keys() []string {
	keys := make([]string, 0, hc.h.Len())
	hc.h.VisitAll(func(k, _ []byte) {
		keys = append(keys, string(k))
	})
	return keys
}

// TraceMiddleware opens a server span per request and stores its
// context as the fiber user context.
func TraceMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if ctx == nil {
			ctx = context.Background()
		}

		route := c.Path()
		_, err := inject.HTTPServerRequest(ctx, c.Method(), route, headerCarrier{h: &c.Request().Header},
			func(ctx context.Context) (int, error) {
				c.SetUserContext(ctx)
				nextErr := c.Next()
				return c.Response().StatusCode(), nextErr
			})
		return err
	}
}
