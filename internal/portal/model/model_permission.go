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

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PermissionKind is one CRUD capability on a menu
type PermissionKind string

const (
	PermissionKindCreate PermissionKind = "create"
	PermissionKindRead   PermissionKind = "read"
	PermissionKindUpdate PermissionKind = "update"
	PermissionKindDelete PermissionKind = "delete"
)

// canonical order
var permissionKinds = [...]PermissionKind{PermissionKindCreate, PermissionKindRead, PermissionKindUpdate, PermissionKindDelete}

func (k PermissionKind) bit() (PermissionSet, bool) {
	for i, kind := range permissionKinds {
		if kind == k {
			return 1 << i, true
		}
	}
	return 0, false
}

// PermissionSet is a set of PermissionKind. The zero value means no access.
type PermissionSet uint8

// FullAccess is granted when access to a menu is switched on
const FullAccess PermissionSet = 1<<len(permissionKinds) - 1

// ParsePermissions builds a set, ignoring duplicates and rejecting unknown kinds
func ParsePermissions(kinds ...string) (PermissionSet, error) {
	var s PermissionSet
	for _, raw := range kinds {
		bit, ok := PermissionKind(strings.ToLower(strings.TrimSpace(raw))).bit()
		if !ok {
			return 0, fmt.Errorf("unknown permission kind %q", raw)
		}
		s |= bit
	}
	return s, nil
}

// MustPermissions is ParsePermissions for constant input
func MustPermissions(kinds ...string) PermissionSet {
	s, err := ParsePermissions(kinds...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s PermissionSet) Has(k PermissionKind) bool {
	bit, ok := k.bit()
	return ok && s&bit != 0
}

// HasAccess reports whether the set is non-empty
func (s PermissionSet) HasAccess() bool { return s&FullAccess != 0 }

// Kinds in canonical order
func (s PermissionSet) Kinds() []PermissionKind {
	out := make([]PermissionKind, 0, len(permissionKinds))
	for i, kind := range permissionKinds {
		if s&(1<<i) != 0 {
			out = append(out, kind)
		}
	}
	return out
}

func (s PermissionSet) Strings() []string {
	kinds := s.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func (s PermissionSet) String() string {
	return "[" + strings.Join(s.Strings(), ",") + "]"
}

func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var kinds []string
	if err := json.Unmarshal(data, &kinds); err != nil {
		return fmt.Errorf("permissions: %w", err)
	}
	parsed, err := ParsePermissions(kinds...)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// PermissionGroup clusters the menus of one application section
type PermissionGroup struct {
	ID        int              `json:"id"`
	GroupName string           `json:"group_name"`
	GroupLink string           `json:"group_link"`
	Menus     []MenuPermission `json:"menus"`
}

// MenuPermission is the editable cell of the matrix
type MenuPermission struct {
	ID             int           `json:"id"`
	MenuName       string        `json:"menu_name"`
	Link           string        `json:"link"`
	Icon           string        `json:"icon"`
	AccessRecordID *int          `json:"access_record_id"`
	Permissions    PermissionSet `json:"permissions"`
}

// PermissionMatrixResponse hak-akses GET body
type PermissionMatrixResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    []PermissionGroup `json:"data"`
}

// PermissionUpdate hak-akses PUT body. RoleID is omitted for the
// variant of the endpoint that infers the role.
type PermissionUpdate struct {
	RoleID       *int          `json:"role_id,omitempty"`
	MenuDetailID int           `json:"menu_detail_id"`
	Permission   PermissionSet `json:"permission"`
}

// CloneGroups deep copies a matrix
func CloneGroups(groups []PermissionGroup) []PermissionGroup {
	if groups == nil {
		return nil
	}
	out := make([]PermissionGroup, len(groups))
	for i, g := range groups {
		out[i] = g
		out[i].Menus = make([]MenuPermission, len(g.Menus))
		for j, m := range g.Menus {
			if m.AccessRecordID != nil {
				id := *m.AccessRecordID
				m.AccessRecordID = &id
			}
			out[i].Menus[j] = m
		}
	}
	return out
}
