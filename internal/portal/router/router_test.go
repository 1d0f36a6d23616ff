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
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/locales"
	"github.com/go-arcade/portal/internal/portal/repo"
	"github.com/go-arcade/portal/internal/portal/service"
	"github.com/go-arcade/portal/pkg/cache"
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/i18n"
	"github.com/go-arcade/portal/pkg/pprof"
	"github.com/go-arcade/portal/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "portal-secret"

type call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// upstream is a scripted backend keyed by "METHOD /path"
type upstream struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []call
}

func (u *upstream) seen(method, path string) []call {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []call
	for _, c := range u.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func ok(body string) http.HandlerFunc { return reply(http.StatusOK, body) }

type harness struct {
	app      *fiber.App
	rt       *Router
	upstream *upstream
}

func newHarness(t *testing.T, routes map[string]http.HandlerFunc) *harness {
	t.Helper()
	up := &upstream{routes: routes}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &c.Body)
		}
		up.mu.Lock()
		up.calls = append(up.calls, c)
		h, found := up.routes[r.Method+" "+r.URL.Path]
		up.mu.Unlock()
		if !found {
			reply(http.StatusNotFound, `{"message":"not found"}`)(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := client.New(config.UpstreamConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil)
	lq := service.ListQueryConfig{
		Cache: cache.NewFastCache(cache.FastCacheConfig{MaxBytes: 1 << 20}),
		TTL:   time.Minute,
	}
	sessionConf := config.SessionConfig{CookieName: "token", LoginPath: "/auth/login", MaxAge: time.Hour}
	services := service.NewServices(
		lq,
		sessionConf,
		config.SSOConfig{SecretKey: testSecret},
		config.PermissionConfig{IncludeRoleId: true, SessionTTL: time.Minute, MaxSessions: 8},
		nil,
		repo.NewAuthRepo(c),
		repo.NewPortalRepo(c),
		repo.NewUserRepo(c),
		repo.NewRoleRepo(c),
		repo.NewPermissionRepo(c),
		repo.NewSettingsRepo(c),
	)
	rt := NewRouter(&httpx.Http{}, sessionConf, i18n.Conf{}, pprof.Conf{}, locales.FS(), services, nil, shutdown.NewManager())
	return &harness{app: rt.Router(), rt: rt, upstream: up}
}

type reqOption func(*http.Request)

func withToken(token string) reqOption {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: token}) }
}

func asBrowser() reqOption {
	return func(r *http.Request) { r.Header.Set(fiber.HeaderAccept, "text/html,application/xhtml+xml") }
}

func withLang(lang string) reqOption {
	return func(r *http.Request) { r.Header.Set(fiber.HeaderAcceptLanguage, lang) }
}

// envelope covers both the success and the error shape
type envelope struct {
	Code   int               `json:"code"`
	Msg    string            `json:"msg"`
	ErrMsg string            `json:"errMsg"`
	Detail json.RawMessage   `json:"detail"`
	Fields map[string]string `json:"fields"`
	Toast  *httpx.Toast      `json:"toast"`
}

func (h *harness) do(t *testing.T, method, path string, body any, opts ...reqOption) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for _, opt := range opts {
		opt(req)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	h := newHarness(t, nil)
	resp, _ := h.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	h.rt.Shutdown.Begin()
	resp, _ = h.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGuard_NavigationRedirectsToLogin(t *testing.T) {
	h := newHarness(t, nil)

	resp, _ := h.do(t, http.MethodGet, "/administrator/users", nil, asBrowser())
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))
	assert.Empty(t, h.upstream.seen(http.MethodGet, "/api/portal/manajemen-user/users"))
}

func TestGuard_APICallGetsUnauthorized(t *testing.T) {
	h := newHarness(t, nil)

	resp, env := h.do(t, http.MethodGet, "/administrator/roles", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, httpx.Unauthorized.Code, env.Code)
	assert.Equal(t, "/auth/login", decode[map[string]string](t, env.Detail)["redirect"])
}

func TestGuard_ExpiredJWTCountsAsNoSession(t *testing.T) {
	h := newHarness(t, nil)
	// {"alg":"none"} with exp in 2001
	expired := "eyJhbGciOiJub25lIn0.eyJleHAiOjEwMDAwMDAwMDB9."

	resp, _ := h.do(t, http.MethodGet, "/", nil, asBrowser(), withToken(expired))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestUpstream401_ClearsSessionAndRedirects(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"GET /api/portal/manajemen-user/users": reply(http.StatusUnauthorized, `{"message":"Unauthenticated."}`),
	})

	resp, _ := h.do(t, http.MethodGet, "/administrator/users", nil, asBrowser(), withToken("abc"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.Expires.Before(time.Now()))

	// a 401 is never retried
	assert.Len(t, h.upstream.seen(http.MethodGet, "/api/portal/manajemen-user/users"), 1)
}

func TestLogin(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": ok(`{"token":"abc","user":{"id":1,"nama":"Budi","username":"budi","password":"secret","rolePortal":"ADMIN"}}`),
	})

	resp, env := h.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "  budi ", "password": "pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Toast)
	assert.Equal(t, httpx.ToastSuccess, env.Toast.Type)
	assert.Equal(t, "Login berhasil!", env.Toast.Message)

	detail := decode[map[string]any](t, env.Detail)
	assert.Equal(t, "/", detail["redirect"])

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Equal(t, "abc", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	logins := h.upstream.seen(http.MethodPost, "/api/auth/login")
	require.Len(t, logins, 1)
	assert.Equal(t, "budi", logins[0].Body["username"])

	// the stored profile never carries the password
	resp, env = h.do(t, http.MethodGet, "/auth/profile", nil, withToken("abc"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode[map[string]any](t, env.Detail)
	assert.Equal(t, "Budi", profile["nama"])
	assert.NotContains(t, profile, "password")
}

func TestLogin_ServerMessage(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": reply(http.StatusUnprocessableEntity, `{"message":"Password salah"}`),
	})

	resp, env := h.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "budi", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NotNil(t, env.Toast)
	assert.Equal(t, "Password salah", env.Toast.Message)
	assert.Nil(t, sessionCookie(resp))
}

func TestLogin_FallbackMessage(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": reply(http.StatusUnauthorized, `{}`),
	})

	_, env := h.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "budi", "password": "x"})
	require.NotNil(t, env.Toast)
	assert.Equal(t, "Login Gagal! Cek username/password.", env.Toast.Message)
}

func TestLogin_Validation(t *testing.T) {
	h := newHarness(t, nil)

	resp, env := h.do(t, http.MethodPost, "/auth/login", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username wajib diisi", env.Fields["username"])
	assert.Equal(t, "Password wajib diisi", env.Fields["password"])
	require.NotNil(t, env.Toast)
	assert.Equal(t, "Mohon lengkapi data form dengan benar.", env.Toast.Message)
	assert.Empty(t, h.upstream.seen(http.MethodPost, "/api/auth/login"))
}

func TestLogin_ValidationEnglish(t *testing.T) {
	h := newHarness(t, nil)

	_, env := h.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "budi"}, withLang("en"))
	assert.Equal(t, "Password is required", env.Fields["password"])
	require.NotNil(t, env.Toast)
	assert.Equal(t, "Please fill in the form correctly.", env.Toast.Message)
}

func TestLoginPage_SignedInGoesHome(t *testing.T) {
	h := newHarness(t, nil)

	resp, _ := h.do(t, http.MethodGet, "/auth/login", nil, asBrowser(), withToken("abc"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	resp, _ = h.do(t, http.MethodGet, "/auth/login", nil, asBrowser())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogout_AlwaysClearsCookie(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"POST /api/auth/logout": reply(http.StatusInternalServerError, `{}`),
	})

	resp, _ := h.do(t, http.MethodPost, "/auth/logout", nil, asBrowser(), withToken("abc"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}
