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

package service

import (
	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/repo"
	"github.com/go-arcade/portal/pkg/metrics"
)

// Services 统一管理所有 service
type Services struct {
	Directory   *DirectoryService
	Auth        *AuthService
	User        *UserService
	Role        *RoleService
	Settings    *SettingsService
	SSO         *SSOService
	Permissions *PermissionEditor
}

// NewServices 初始化所有 service
func NewServices(
	lq ListQueryConfig,
	sessionConf config.SessionConfig,
	ssoConf config.SSOConfig,
	permConf config.PermissionConfig,
	m *metrics.Portal,
	authRepo repo.IAuthRepository,
	portalRepo repo.IPortalRepository,
	userRepo repo.IUserRepository,
	roleRepo repo.IRoleRepository,
	permissionRepo repo.IPermissionRepository,
	settingsRepo repo.ISettingsRepository,
) *Services {
	// directory 被 auth、role、sso、permission 共享
	directory := NewDirectoryService(portalRepo, lq, sessionConf)

	return &Services{
		Directory:   directory,
		Auth:        NewAuthService(authRepo, directory),
		User:        NewUserService(userRepo, lq),
		Role:        NewRoleService(roleRepo, directory, lq),
		Settings:    NewSettingsService(settingsRepo, lq),
		SSO:         NewSSOService(ssoConf, directory, m),
		Permissions: NewPermissionEditor(permissionRepo, directory, permConf, m),
	}
}
