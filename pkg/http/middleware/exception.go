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
	"runtime/debug"

	"github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// ExceptionMiddleware recovers handler panics into a 500 envelope
func ExceptionMiddleware(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic recovered", "path", c.Path(), "panic", r, "stack", string(debug.Stack()))
			err = c.Status(fiber.StatusInternalServerError).JSON(http.ResponseErr{
				ErrCode: http.InternalError.Code,
				ErrMsg:  errorToString(r),
				Path:    c.Path(),
			})
		}
	}()

	return c.Next()
}

func errorToString(r any) string {
	switch v := r.(type) {
	case http.ResponseErr:
		// 符合预期的错误，可以直接返回给客户端
		if errMsg, ok := v.ErrMsg.(string); ok {
			return errMsg
		}
		return http.InternalError.Msg
	case *http.Error:
		return v.Error()
	case error:
		// never leak internal error text
		return http.InternalError.Msg
	default:
		if errMsg, ok := v.(string); ok {
			return errMsg
		}
		return http.InternalError.Msg
	}
}
