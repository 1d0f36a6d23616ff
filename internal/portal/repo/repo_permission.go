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
	"net/url"
	"strconv"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/model"
)

type IPermissionRepository interface {
	GetMatrix(ctx context.Context, roleID, appID int) ([]model.PermissionGroup, error)
	UpdateMenuPermission(ctx context.Context, update model.PermissionUpdate) error
}

type PermissionRepo struct {
	*client.Client
}

func NewPermissionRepo(c *client.Client) IPermissionRepository {
	return &PermissionRepo{Client: c}
}

// GetMatrix 获取角色在应用下的菜单权限
func (r *PermissionRepo) GetMatrix(ctx context.Context, roleID, appID int) ([]model.PermissionGroup, error) {
	query := url.Values{
		"role_id": {strconv.Itoa(roleID)},
		"app_id":  {strconv.Itoa(appID)},
	}
	var resp model.PermissionMatrixResponse
	if err := r.Get(ctx, hakAksesPath, query, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &client.APIError{Status: 200, Path: hakAksesPath, Message: resp.Message}
	}
	if resp.Data == nil {
		return []model.PermissionGroup{}, nil
	}
	return resp.Data, nil
}

// UpdateMenuPermission writes the permission set of one menu
func (r *PermissionRepo) UpdateMenuPermission(ctx context.Context, update model.PermissionUpdate) error {
	return r.Put(ctx, hakAksesPath, update, nil)
}
