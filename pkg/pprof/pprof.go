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

package pprof

import (
	"github.com/gofiber/fiber/v2"
	fiberpprof "github.com/gofiber/fiber/v2/middleware/pprof"
)

// Conf mounts the runtime profiles on the main listener under
// <Prefix>/debug/pprof when Enable is set. Prefix may be empty.
type Conf struct {
	Enable bool
	Prefix string
}

// Middleware serves the profiles. It is a pass through when disabled.
func Middleware(conf Conf) fiber.Handler {
	if !conf.Enable {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return fiberpprof.New(fiberpprof.Config{Prefix: conf.Prefix})
}
