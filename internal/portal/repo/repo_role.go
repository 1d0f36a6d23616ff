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
	"context"
	"encoding/json"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/model"
)

type IRoleRepository interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	CreateRole(ctx context.Context, payload model.RolePayload) error
	UpdateRole(ctx context.Context, id int, payload model.RolePayload) error
	DeleteRole(ctx context.Context, id int) error
}

type RoleRepo struct {
	*client.Client
}

func NewRoleRepo(c *client.Client) IRoleRepository {
	return &RoleRepo{Client: c}
}

// ListRoles accepts the list bare or under "data" / "roles"
func (r *RoleRepo) ListRoles(ctx context.Context) ([]model.Role, error) {
	var raw json.RawMessage
	if err := r.Get(ctx, rolesPath, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[model.Role](raw, "data", "roles")
}

func (r *RoleRepo) CreateRole(ctx context.Context, payload model.RolePayload) error {
	return r.Post(ctx, rolesPath, payload, nil)
}

func (r *RoleRepo) UpdateRole(ctx context.Context, id int, payload model.RolePayload) error {
	return r.Put(ctx, itemPath(rolesPath, id), payload, nil)
}

func (r *RoleRepo) DeleteRole(ctx context.Context, id int) error {
	return r.Delete(ctx, itemPath(rolesPath, id), nil)
}
