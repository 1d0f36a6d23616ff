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

// Application tile on the dashboard
type Application struct {
	ID          int     `json:"id"`
	Nama        string  `json:"nama"`
	URL         string  `json:"url"`
	Description *string `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
	Color       string  `json:"color,omitempty"`
}

type DashboardResponse struct {
	Applications []Application `json:"applications"`
}

// AplikasiItem admin application list row
type AplikasiItem struct {
	ID        int     `json:"id"`
	Nama      string  `json:"nama"`
	URL       string  `json:"url"`
	Deskripsi *string `json:"deskripsi,omitempty"`
	Icon      string  `json:"icon,omitempty"`
	Status    *int    `json:"status,omitempty"`
}

type AplikasiListResponse struct {
	Success bool           `json:"success"`
	Data    []AplikasiItem `json:"data"`
}

// Menu sidebar section
type Menu struct {
	Nama    string       `json:"nama"`
	URL     string       `json:"url"`
	Icon    string       `json:"icon,omitempty"`
	Details []MenuDetail `json:"details"`
}

type MenuDetail struct {
	Nama string `json:"nama"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
}

type MenuResponse struct {
	Menus []Menu `json:"menus"`
}

// NavigableMenus keeps only menus that have entries
func NavigableMenus(menus []Menu) []Menu {
	out := make([]Menu, 0, len(menus))
	for _, m := range menus {
		if len(m.Details) > 0 {
			out = append(out, m)
		}
	}
	return out
}

// LoginRequest credentials form
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required" label:"Username"`
	Password string `json:"password" form:"password" validate:"required" label:"Password"`
}

// LoginResult upstream login response
type LoginResult struct {
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message,omitempty"`
}
