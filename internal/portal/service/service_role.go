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
	"context"

	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/internal/portal/repo"
)

type RoleService struct {
	roleRepo  repo.IRoleRepository
	directory *DirectoryService
	roles     *ListQuery[[]model.Role]
}

func NewRoleService(roleRepo repo.IRoleRepository, directory *DirectoryService, lq ListQueryConfig) *RoleService {
	return &RoleService{
		roleRepo:  roleRepo,
		directory: directory,
		roles: NewListQuery("roles", lq, []model.Role{}, func(ctx context.Context, _ ...any) ([]model.Role, error) {
			return roleRepo.ListRoles(ctx)
		}),
	}
}

func (s *RoleService) views(ctx context.Context) func([]model.Role) []model.RoleView {
	return func(roles []model.Role) []model.RoleView {
		out := make([]model.RoleView, 0, len(roles))
		for _, r := range roles {
			out = append(out, model.RoleView{Role: r, Aplikasi: s.directory.ResolveAppNames(ctx, r.AplikasiIDs)})
		}
		return out
	}
}

// List resolves application names from the session app_cache
func (s *RoleService) List(ctx context.Context) (ListState[[]model.RoleView], error) {
	st, err := s.roles.Read(ctx)
	return mapState(st, s.views(ctx)), err
}

func (s *RoleService) Refresh(ctx context.Context) (ListState[[]model.RoleView], error) {
	st, err := s.roles.Refresh(ctx)
	return mapState(st, s.views(ctx)), err
}

func (s *RoleService) Create(ctx context.Context, form model.RoleForm) error {
	if err := s.roleRepo.CreateRole(ctx, model.NewRolePayload(form)); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.roles)
	return nil
}

func (s *RoleService) Update(ctx context.Context, id int, form model.RoleForm) error {
	if err := s.roleRepo.UpdateRole(ctx, id, model.NewRolePayload(form)); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.roles)
	return nil
}

func (s *RoleService) Delete(ctx context.Context, id int) error {
	if err := s.roleRepo.DeleteRole(ctx, id); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.roles)
	return nil
}
