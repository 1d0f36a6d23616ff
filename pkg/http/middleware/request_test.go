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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMiddleware_WithExistingRequestId(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		assert.Equal(t, "existing-request-id-12345", c.Get("X-Request-Id"))
		assert.Equal(t, "existing-request-id-12345", c.Locals("request_id"))
		return c.SendString("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-Id", "existing-request-id-12345")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "existing-request-id-12345", resp.Header.Get("X-Request-Id"))
}

func TestRequestMiddleware_GeneratesUniqueUUIDs(t *testing.T) {
	app := fiber.New()
	app.Use(RequestMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error { return c.SendString("ok") })

	seen := map[string]bool{}
	for range 5 {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
		require.NoError(t, err)
		rid := resp.Header.Get("X-Request-Id")
		_, err = uuid.Parse(rid)
		assert.NoError(t, err, "X-Request-Id should be a uuid, got %q", rid)
		assert.False(t, seen[rid], "duplicate request id %s", rid)
		seen[rid] = true
	}
}

func TestRealIPMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RealIPMiddleware())
	app.Get("/ip", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("ip").(string))
	})

	cases := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": " 10.0.0.9 "}, "10.0.0.9"},
		{"socket", nil, "0.0.0.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ip", nil)
			for k, v := range tc.header {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body := make([]byte, 64)
			n, _ := resp.Body.Read(body)
			assert.Equal(t, tc.want, string(body[:n]))
		})
	}
}
