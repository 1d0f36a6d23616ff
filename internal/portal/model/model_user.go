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

// RolePortal is the coarse account tier
type RolePortal string

const (
	RolePortalSuperAdmin RolePortal = "SUPER ADMIN"
	RolePortalAdmin      RolePortal = "ADMIN"
	RolePortalUser       RolePortal = "USER"
)

var rolePortalColors = map[RolePortal]string{
	RolePortalSuperAdmin: "error",
	RolePortalAdmin:      "warning",
	RolePortalUser:       "success",
}

// RolePortals lists the tiers in display order
func RolePortals() []RolePortal {
	return []RolePortal{RolePortalSuperAdmin, RolePortalAdmin, RolePortalUser}
}

func ParseRolePortal(s string) (RolePortal, error) {
	r := RolePortal(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role portal %q", s)
	}
	return r, nil
}

func (r RolePortal) Valid() bool {
	_, ok := rolePortalColors[r]
	return ok
}

// Color chip colour of the tier, "default" for unknown values
func (r RolePortal) Color() string {
	if c, ok := rolePortalColors[r]; ok {
		return c
	}
	return "default"
}

// User 用户
type User struct {
	ID             int        `json:"id"`
	Username       string     `json:"username"`
	Nama           string     `json:"nama"`
	RoleID         int        `json:"roleId"`
	Jabatan        string     `json:"jabatan"`
	RolePortal     RolePortal `json:"rolePortal"`
	IsUserPpob     bool       `json:"isUserPpob"`
	IsUserTimtagih bool       `json:"isUserTimtagih"`
	IsActive       bool       `json:"isActive"`
	NoHp           *string    `json:"noHp"`
	Password       *string    `json:"password,omitempty"`
}

// UserView adds the tier colour to a user row
type UserView struct {
	User
	RolePortalColor string `json:"rolePortalColor"`
}

func NewUserView(u User) UserView {
	u.Password = nil
	return UserView{User: u, RolePortalColor: u.RolePortal.Color()}
}

type UserListResponse struct {
	Message string `json:"message"`
	Users   []User `json:"users"`
}

// UserForm create/update form. Password is required on create only.
type UserForm struct {
	Nama           string `json:"nama" validate:"required" label:"Nama"`
	Username       string `json:"username" validate:"required" label:"Username"`
	Jabatan        string `json:"jabatan" validate:"required" label:"Jabatan"`
	RolePortal     string `json:"rolePortal" validate:"required,role_portal" label:"Role Portal"`
	RoleID         int    `json:"roleId" validate:"gt=0" label:"Role"`
	NoHp           string `json:"noHp" label:"No HP"`
	IsUserPpob     any    `json:"isUserPpob"`
	IsUserTimtagih any    `json:"isUserTimtagih"`
	IsActive       any    `json:"isActive"`
	Password       string `json:"password" validate:"required_if=Create true" label:"Password"`
	Create         bool   `json:"-"`
}

// UserPayload request body sent upstream
type UserPayload struct {
	Nama           string     `json:"nama"`
	Username       string     `json:"username"`
	Jabatan        string     `json:"jabatan"`
	RolePortal     RolePortal `json:"rolePortal"`
	RoleID         int        `json:"roleId"`
	NoHp           *string    `json:"noHp"`
	IsUserPpob     bool       `json:"isUserPpob"`
	IsActive       bool       `json:"isActive"`
	IsUserTimtagih bool       `json:"isUserTimtagih"`
	Password       string     `json:"password,omitempty"`
}

// NewUserPayload trims text fields, canonicalises the tier, maps an
// empty phone to null and only treats a literal true as true.
func NewUserPayload(f UserForm) (UserPayload, error) {
	tier, err := ParseRolePortal(f.RolePortal)
	if err != nil {
		return UserPayload{}, err
	}
	p := UserPayload{
		Nama:           trim(f.Nama),
		Username:       trim(f.Username),
		Jabatan:        trim(f.Jabatan),
		RolePortal:     tier,
		RoleID:         f.RoleID,
		IsUserPpob:     strictTrue(f.IsUserPpob),
		IsActive:       strictTrue(f.IsActive),
		IsUserTimtagih: strictTrue(f.IsUserTimtagih),
		Password:       f.Password,
	}
	if phone := trim(f.NoHp); phone != "" {
		p.NoHp = &phone
	}
	return p, nil
}

func strictTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func trim(s string) string { return strings.TrimSpace(s) }

// FlexBool decodes booleans sent as true/false, 0/1 or "0"/"1"
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch s := strings.Trim(string(data), `"`); s {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("flexbool: %s", data)
		}
		*b = n != 0
	}
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}
