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
	"net/http"
	"testing"

	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const usersPath = "/api/portal/manajemen-user/users"

type listDetail struct {
	Data  []map[string]any `json:"data"`
	Error string           `json:"error"`
}

func TestUsers_ListWithTierColour(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"GET " + usersPath: ok(`{"users":[{"id":2,"username":"budi","nama":"Budi","rolePortal":"ADMIN","password":"x"}]}`),
	})

	resp, env := h.do(t, http.MethodGet, "/administrator/users", nil, withToken("abc"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[listDetail](t, env.Detail)
	require.Len(t, st.Data, 1)
	assert.Equal(t, "budi", st.Data[0]["username"])
	assert.NotEmpty(t, st.Data[0]["rolePortalColor"])
	assert.NotContains(t, st.Data[0], "password")
}

func TestUsers_CreateRequiresPassword(t *testing.T) {
	h := newHarness(t, nil)
	form := map[string]any{"nama": "Budi", "username": "budi", "jabatan": "Staff", "rolePortal": "ADMIN"}

	resp, env := h.do(t, http.MethodPost, "/administrator/users", form, withToken("abc"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, httpx.BadRequest.Code, env.Code)
	assert.Equal(t, "Password wajib diisi", env.Fields["password"])
	assert.Equal(t, "Role wajib dipilih", env.Fields["roleId"])
	assert.Empty(t, h.upstream.seen(http.MethodPost, usersPath))
}

func TestUsers_UnknownRolePortal(t *testing.T) {
	h := newHarness(t, nil)
	form := map[string]any{"nama": "Budi", "username": "budi", "jabatan": "Staff", "rolePortal": "ROOT", "roleId": 1, "password": "pw"}

	_, env := h.do(t, http.MethodPost, "/administrator/users", form, withToken("abc"))
	assert.Equal(t, "Role Portal tidak valid", env.Fields["rolePortal"])
}

func TestUsers_CreateRefreshesList(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"GET " + usersPath:  ok(`{"users":[]}`),
		"POST " + usersPath: ok(`{}`),
	})
	form := map[string]any{
		"nama": " Budi ", "username": "budi", "jabatan": "Staff", "rolePortal": "ADMIN",
		"roleId": 3, "password": "pw", "noHp": "", "isActive": "true",
	}

	resp, env := h.do(t, http.MethodPost, "/administrator/users", form, withToken("abc"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Toast)
	assert.Equal(t, "User baru berhasil ditambahkan.", env.Toast.Message)

	posts := h.upstream.seen(http.MethodPost, usersPath)
	require.Len(t, posts, 1)
	assert.Equal(t, "Budi", posts[0].Body["nama"])
	assert.Nil(t, posts[0].Body["noHp"])
	assert.Equal(t, false, posts[0].Body["isActive"])
	assert.Len(t, h.upstream.seen(http.MethodGet, usersPath), 1)
}

func TestUsers_UpdateSendsCanonicalTier(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"GET " + usersPath:       ok(`{"users":[]}`),
		"PUT " + usersPath + "/4": ok(`{}`),
	})
	form := map[string]any{"nama": "Budi", "username": "budi", "jabatan": "Staff", "rolePortal": " admin ", "roleId": 3}

	resp, _ := h.do(t, http.MethodPut, "/administrator/users/4", form, withToken("abc"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	puts := h.upstream.seen(http.MethodPut, usersPath+"/4")
	require.Len(t, puts, 1)
	assert.Equal(t, "ADMIN", puts[0].Body["rolePortal"])
}

func TestUsers_UpstreamMessageBecomesToast(t *testing.T) {
	h := newHarness(t, map[string]http.HandlerFunc{
		"DELETE " + usersPath + "/7": reply(http.StatusConflict, `{"message":"User masih dipakai"}`),
	})

	resp, env := h.do(t, http.MethodDelete, "/administrator/users/7", nil, withToken("abc"))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.NotNil(t, env.Toast)
	assert.Equal(t, httpx.ToastError, env.Toast.Type)
	assert.Equal(t, "User masih dipakai", env.Toast.Message)
}

func TestUsers_InvalidID(t *testing.T) {
	h := newHarness(t, nil)

	resp, _ := h.do(t, http.MethodDelete, "/administrator/users/abc", nil, withToken("abc"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRoles_ResolveApplicationNames(t *testing.T) {
	routes := portalRoutes()
	routes["GET /api/portal/manajemen-role/roles"] = ok(`{"data":[{"id":5,"nama":"Operator","aplikasi_ids":[1,null,9]}]}`)
	h := newHarness(t, routes)
	_, _ = h.do(t, http.MethodGet, "/", nil, withToken("abc"))

	_, env := h.do(t, http.MethodGet, "/administrator/roles", nil, withToken("abc"))
	st := decode[listDetail](t, env.Detail)
	require.Len(t, st.Data, 1)
	apps, _ := st.Data[0]["aplikasi"].([]any)
	require.Len(t, apps, 2)
	assert.Equal(t, "Billing", apps[0].(map[string]any)["nama"])
	assert.Equal(t, "ID: 9", apps[1].(map[string]any)["nama"])
}

func TestRoles_CreateValidation(t *testing.T) {
	h := newHarness(t, nil)

	resp, env := h.do(t, http.MethodPost, "/administrator/roles", map[string]any{"nama": ""}, withToken("abc"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Nama Role wajib diisi", env.Fields["nama"])
}
