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

package repo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// upstream paths
const (
	authLoginPath   = "/api/auth/login"
	authLogoutPath  = "/api/auth/logout"
	dashboardPath   = "/api/portal/get-dashboard"
	menuPath        = "/api/portal/menu"
	usersPath       = "/api/portal/manajemen-user/users"
	rolesPath       = "/api/portal/manajemen-role/roles"
	hakAksesPath    = "/api/portal/manajemen-role/hak-akses"
	aplikasiPath    = "/api/portal/manajemen-aplikasi"
	parafPath       = "/api/portal/settings/paraf"
	ttdLaporanPath  = "/api/portal/settings/ttd-lap"
	desktopSettings = "/api/portal/settings/desktop"
)

func itemPath(base string, id int) string {
	return base + "/" + strconv.Itoa(id)
}

// decodeList accepts a bare array or an object wrapping it under one of keys
func decodeList[T any](raw json.RawMessage, keys ...string) ([]T, error) {
	out := []T{}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	for _, key := range keys {
		if inner, ok := wrapper[key]; ok {
			return decodeList[T](inner)
		}
	}
	return out, nil
}
