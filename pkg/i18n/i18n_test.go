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

package i18n

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bundles = fstest.MapFS{
	"id.json": {Data: []byte(`{"toast.login.success": "Login berhasil!", "sso.notRegistered": "Aplikasi {{.Name}} belum terdaftar."}`)},
	"en.json": {Data: []byte(`{"toast.login.success": "Login successful!", "sso.notRegistered": "Application {{.Name}} is not registered."}`)},
}

func localise(t *testing.T, app *fiber.App, lang string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestT_WithBundles(t *testing.T) {
	app := fiber.New()
	app.Use(New(Conf{}, bundles))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(T(c, "toast.login.success", "fallback", nil))
	})

	assert.Equal(t, "Login berhasil!", localise(t, app, ""))
	assert.Equal(t, "Login successful!", localise(t, app, "en"))
}

func TestT_TemplateData(t *testing.T) {
	app := fiber.New()
	app.Use(New(Conf{}, bundles))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(T(c, "sso.notRegistered", "", map[string]any{"Name": "Billing"}))
	})

	assert.Equal(t, "Aplikasi Billing belum terdaftar.", localise(t, app, "id"))
}

func TestT_FallbackWithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(T(c, "sso.notRegistered", "Aplikasi {{.Name}} belum terdaftar.", map[string]any{"Name": "X"}))
	})

	assert.Equal(t, "Aplikasi X belum terdaftar.", localise(t, app, ""))
}

func TestApplyTemplate(t *testing.T) {
	assert.Equal(t, "plain", applyTemplate("plain", nil))
	assert.Equal(t, "{{.broken", applyTemplate("{{.broken", map[string]any{"a": 1}))
}
