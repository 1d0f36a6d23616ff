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

type ISettingsRepository interface {
	ListApplications(ctx context.Context) ([]model.AplikasiItem, error)

	ListTtdLaporan(ctx context.Context, aplikasiID int) ([]model.TtdLaporan, error)
	UpdateTtdLaporan(ctx context.Context, id int, payload model.TtdLaporanPayload) error

	ListParaf(ctx context.Context) ([]model.Paraf, error)
	CreateParaf(ctx context.Context, payload model.ParafPayload) error
	UpdateParaf(ctx context.Context, id int, payload model.ParafPayload) error
	DeleteParaf(ctx context.Context, id int) error

	GetDesktopSettings(ctx context.Context) (*model.DesktopSettings, error)
	UpdateDesktopSettings(ctx context.Context, payload model.DesktopSettingsPayload) error
}

type SettingsRepo struct {
	*client.Client
}

func NewSettingsRepo(c *client.Client) ISettingsRepository {
	return &SettingsRepo{Client: c}
}

func (r *SettingsRepo) ListApplications(ctx context.Context) ([]model.AplikasiItem, error) {
	var resp model.AplikasiListResponse
	if err := r.Get(ctx, aplikasiPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []model.AplikasiItem{}, nil
	}
	return resp.Data, nil
}

func (r *SettingsRepo) ListTtdLaporan(ctx context.Context, aplikasiID int) ([]model.TtdLaporan, error) {
	var resp model.TtdLaporanListResponse
	query := url.Values{"aplikasi_id": {strconv.Itoa(aplikasiID)}}
	if err := r.Get(ctx, ttdLaporanPath, query, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []model.TtdLaporan{}, nil
	}
	return resp.Data, nil
}

func (r *SettingsRepo) UpdateTtdLaporan(ctx context.Context, id int, payload model.TtdLaporanPayload) error {
	return r.Put(ctx, itemPath(ttdLaporanPath, id), payload.Normalize(), nil)
}

func (r *SettingsRepo) ListParaf(ctx context.Context) ([]model.Paraf, error) {
	var resp model.ParafListResponse
	if err := r.Get(ctx, parafPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []model.Paraf{}, nil
	}
	return resp.Data, nil
}

func (r *SettingsRepo) CreateParaf(ctx context.Context, payload model.ParafPayload) error {
	return r.Post(ctx, parafPath, payload, nil)
}

func (r *SettingsRepo) UpdateParaf(ctx context.Context, id int, payload model.ParafPayload) error {
	return r.Put(ctx, itemPath(parafPath, id), payload, nil)
}

func (r *SettingsRepo) DeleteParaf(ctx context.Context, id int) error {
	return r.Delete(ctx, itemPath(parafPath, id), nil)
}

func (r *SettingsRepo) GetDesktopSettings(ctx context.Context) (*model.DesktopSettings, error) {
	var resp model.DesktopSettingsResponse
	if err := r.Get(ctx, desktopSettings, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (r *SettingsRepo) UpdateDesktopSettings(ctx context.Context, payload model.DesktopSettingsPayload) error {
	return r.Put(ctx, desktopSettings, payload, nil)
}
