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
	"encoding/json"
	"errors"
	"io/fs"
	"testing"

	"github.com/go-arcade/portal/internal/portal/locales"
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

// the built in texts and the Indonesian bundle must not drift apart
func TestTextsMatchIndonesianBundle(t *testing.T) {
	raw, err := fs.ReadFile(locales.FS(), "id.json")
	require.NoError(t, err)
	bundle := map[string]string{}
	require.NoError(t, json.Unmarshal(raw, &bundle))

	for id, text := range texts {
		assert.Equal(t, text, bundle[id], id)
	}
	assert.Len(t, bundle, len(texts))
}

func TestFail_ErrorWithoutTextIsLocalized(t *testing.T) {
	h := newHarness(t, nil)
	app := fiber.New()
	c := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(c)

	var he *httpx.Error
	require.ErrorAs(t, h.rt.fail(c, errors.New("")), &he)
	assert.Equal(t, fiber.StatusBadGateway, he.Status)
	require.NotNil(t, he.Toast)
	assert.Equal(t, "Terjadi kesalahan yang tidak diketahui", he.Toast.Message)

	require.ErrorAs(t, h.rt.fail(c, errors.New("boom")), &he)
	assert.Equal(t, "boom", he.Toast.Message)
}
