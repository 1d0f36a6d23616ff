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

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/model"
)

type IPortalRepository interface {
	Dashboard(ctx context.Context) ([]model.Application, error)
	Menu(ctx context.Context) ([]model.Menu, error)
}

type PortalRepo struct {
	*client.Client
}

func NewPortalRepo(c *client.Client) IPortalRepository {
	return &PortalRepo{Client: c}
}

func (r *PortalRepo) Dashboard(ctx context.Context) ([]model.Application, error) {
	var resp model.DashboardResponse
	if err := r.Get(ctx, dashboardPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Applications == nil {
		return []model.Application{}, nil
	}
	return resp.Applications, nil
}

// Menu returns the navigation tree without empty sections
func (r *PortalRepo) Menu(ctx context.Context) ([]model.Menu, error) {
	var resp model.MenuResponse
	if err := r.Get(ctx, menuPath, nil, &resp); err != nil {
		return nil, err
	}
	return model.NavigableMenus(resp.Menus), nil
}
