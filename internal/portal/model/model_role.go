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

package model

import "encoding/json"

// Role 角色
type Role struct {
	ID          int    `json:"id"`
	Nama        string `json:"nama"`
	AplikasiIDs []int  `json:"aplikasi_ids"`
}

// UnmarshalJSON drops null application ids
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          int    `json:"id"`
		Nama        string `json:"nama"`
		AplikasiIDs []*int `json:"aplikasi_ids"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Nama = raw.Nama
	r.AplikasiIDs = CompactIDs(raw.AplikasiIDs)
	return nil
}

// RoleForm create/update form
type RoleForm struct {
	Nama        string `json:"nama" validate:"required" label:"Nama Role"`
	AplikasiIDs []*int `json:"aplikasi_ids"`
}

// RolePayload request body sent upstream
type RolePayload struct {
	Nama        string `json:"nama"`
	AplikasiIDs []int  `json:"aplikasi_ids"`
}

func NewRolePayload(f RoleForm) RolePayload {
	return RolePayload{
		Nama:        trim(f.Nama),
		AplikasiIDs: CompactIDs(f.AplikasiIDs),
	}
}

// RoleView is a role row with application names resolved
type RoleView struct {
	Role
	Aplikasi []AppRef `json:"aplikasi"`
}

type AppRef struct {
	ID   int    `json:"id"`
	Nama string `json:"nama"`
}

// CompactIDs removes nil entries, never returning nil
func CompactIDs(ids []*int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}
