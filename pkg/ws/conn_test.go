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

package ws

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpgrade_RejectsPlainHTTP(t *testing.T) {
	app := fiber.New()
	app.Get("/events", Upgrade, func(c *fiber.Ctx) error { return c.SendString("upgraded") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/events", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestUpgrade_PassesWebsocketHandshake(t *testing.T) {
	app := fiber.New()
	app.Get("/events", Upgrade, func(c *fiber.Ctx) error { return c.SendString("upgraded") })

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
