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
	"github.com/gofiber/fiber/v2"
	httpx "github.com/go-arcade/portal/pkg/http"
)

// UnifiedResponseMiddleware 统一响应拦截器
// c.Locals(DETAIL, value) 设置响应数据, c.Locals(OPERATION, true) 只返回结果,
// c.Locals(TOAST, *httpx.Toast) 附带提示.
// Redirects and error responses are left as written by the handler.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status == 0 {
			c.Status(fiber.StatusOK)
			status = fiber.StatusOK
		}
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}

		toast, _ := c.Locals(TOAST).(*httpx.Toast)
		if detail := c.Locals(DETAIL); detail != nil {
			if toast != nil {
				return httpx.WithRepToast(c, toast, detail)
			}
			return httpx.WithRepJSON(c, detail)
		}

		if c.Locals(OPERATION) != nil {
			if toast != nil {
				return httpx.WithRepToast(c, toast, nil)
			}
			return httpx.WithRepNotDetail(c)
		}

		return nil
	}
}
