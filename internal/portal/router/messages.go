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
	"github.com/go-arcade/portal/internal/portal/service"
	"github.com/go-arcade/portal/pkg/i18n"
	"github.com/gofiber/fiber/v2"
)

// message ids, the Indonesian text is the fallback when no bundle matches
const (
	msgLoginOK        = "auth.login_ok"
	msgLoginFailed    = "auth.login_failed"
	msgSessionExpired = "auth.session_expired"
	msgProfileMissing = "auth.profile_missing"

	msgFormInvalid    = "form.invalid"
	msgFieldRequired  = "form.field_required"
	msgFieldInvalid   = "form.field_invalid"
	msgFieldSelect    = "form.field_select"
	msgUnknownError   = "error.unknown"
	msgInvalidID      = "error.invalid_id"
	msgMissingAppID   = "error.missing_app_id"
	msgBadPermissions = "permission.bad_set"
	msgNoAccess       = "permission.no_access"
	msgMenuBusy       = "permission.busy"

	msgUserCreated = "user.created"
	msgUserUpdated = "user.updated"
	msgUserDeleted = "user.deleted"

	msgRoleCreated = "role.created"
	msgRoleUpdated = "role.updated"
	msgRoleDeleted = "role.deleted"

	msgParafCreated = "paraf.created"
	msgParafUpdated = "paraf.updated"
	msgParafDeleted = "paraf.deleted"

	msgTtdUpdated = "ttd.updated"

	msgSettingsUpdated = "settings.updated"
)

var texts = map[string]string{
	msgLoginOK:        "Login berhasil!",
	msgLoginFailed:    "Login Gagal! Cek username/password.",
	msgSessionExpired: "Sesi Anda habis.",
	msgProfileMissing: "Profil pengguna tidak ditemukan.",

	msgFormInvalid:    "Mohon lengkapi data form dengan benar.",
	msgFieldRequired:  "{{.Label}} wajib diisi",
	msgFieldInvalid:   "{{.Label}} tidak valid",
	msgFieldSelect:    "{{.Label}} wajib dipilih",
	msgUnknownError:   "Terjadi kesalahan yang tidak diketahui",
	msgInvalidID:      "ID tidak valid",
	msgMissingAppID:   "Aplikasi wajib dipilih",
	msgBadPermissions: "Hak akses tidak dikenal",
	msgNoAccess:       "Aktifkan akses menu terlebih dahulu",
	msgMenuBusy:       "Perubahan hak akses menu ini masih diproses",

	msgUserCreated: "User baru berhasil ditambahkan.",
	msgUserUpdated: "Data user berhasil diperbarui.",
	msgUserDeleted: "User berhasil dihapus.",

	msgRoleCreated: "Role baru berhasil ditambahkan.",
	msgRoleUpdated: "Role berhasil diperbarui.",
	msgRoleDeleted: "Role berhasil dihapus.",

	msgParafCreated: "Paraf baru berhasil ditambahkan.",
	msgParafUpdated: "Data paraf berhasil diperbarui.",
	msgParafDeleted: "Paraf berhasil dihapus.",

	msgTtdUpdated: "TTD laporan berhasil diperbarui",

	msgSettingsUpdated: "Pengaturan berhasil diperbarui.",
}

func init() {
	for reason, text := range service.SSOTexts {
		texts[string(reason)] = text
	}
	for id, text := range service.PermissionTexts {
		texts[id] = text
	}
	for id, text := range service.TtdEmptyTexts {
		texts[id] = text
	}
}

// t localises id for the request, falling back to the built in text
func t(c *fiber.Ctx, id string, data map[string]any) string {
	return i18n.T(c, id, texts[id], data)
}
