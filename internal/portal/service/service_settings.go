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
	"strings"

	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/internal/portal/repo"
)

// empty state reasons of the ttd screen
const (
	TtdEmptyNoData  = "ttd.empty.none"
	TtdEmptyNoMatch = "ttd.empty.no_match"
)

// TtdEmptyTexts default wording of the empty state reasons
var TtdEmptyTexts = map[string]string{
	TtdEmptyNoData:  "Belum ada data TTD laporan untuk aplikasi ini.",
	TtdEmptyNoMatch: "Tidak ada TTD laporan yang sesuai dengan pencarian.",
}

// TtdListState is a ttd list after the search filter
type TtdListState struct {
	ListState[[]model.TtdLaporan]
	Total int    `json:"total"`
	Empty string `json:"empty,omitempty"`
}

// SettingsService covers the paraf, ttd and desktop settings screens
type SettingsService struct {
	settingsRepo repo.ISettingsRepository
	apps         *ListQuery[[]model.AplikasiItem]
	paraf        *ListQuery[[]model.Paraf]
	ttd          *ListQuery[[]model.TtdLaporan]
	desktop      *ListQuery[model.DesktopSettings]
}

func NewSettingsService(settingsRepo repo.ISettingsRepository, lq ListQueryConfig) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		apps: NewListQuery("aplikasi", lq, []model.AplikasiItem{}, func(ctx context.Context, _ ...any) ([]model.AplikasiItem, error) {
			return settingsRepo.ListApplications(ctx)
		}),
		paraf: NewListQuery("paraf", lq, []model.Paraf{}, func(ctx context.Context, _ ...any) ([]model.Paraf, error) {
			return settingsRepo.ListParaf(ctx)
		}),
		ttd: NewListQuery("ttd_lap", lq, []model.TtdLaporan{}, func(ctx context.Context, params ...any) ([]model.TtdLaporan, error) {
			return settingsRepo.ListTtdLaporan(ctx, params[0].(int))
		}),
		desktop: NewListQuery("desktop_settings", lq, model.DesktopSettings{}, func(ctx context.Context, _ ...any) (model.DesktopSettings, error) {
			settings, err := settingsRepo.GetDesktopSettings(ctx)
			if err != nil {
				return model.DesktopSettings{}, err
			}
			return *settings, nil
		}),
	}
}

func (s *SettingsService) Applications(ctx context.Context) (ListState[[]model.AplikasiItem], error) {
	return s.apps.Read(ctx)
}

func (s *SettingsService) ListParaf(ctx context.Context) (ListState[[]model.Paraf], error) {
	return s.paraf.Read(ctx)
}

func (s *SettingsService) RefreshParaf(ctx context.Context) (ListState[[]model.Paraf], error) {
	return s.paraf.Refresh(ctx)
}

func (s *SettingsService) CreateParaf(ctx context.Context, form model.ParafForm) error {
	if err := s.settingsRepo.CreateParaf(ctx, model.NewParafPayload(form)); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.paraf)
	return nil
}

func (s *SettingsService) UpdateParaf(ctx context.Context, id int, form model.ParafForm) error {
	if err := s.settingsRepo.UpdateParaf(ctx, id, model.NewParafPayload(form)); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.paraf)
	return nil
}

func (s *SettingsService) DeleteParaf(ctx context.Context, id int) error {
	if err := s.settingsRepo.DeleteParaf(ctx, id); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.paraf)
	return nil
}

// ListTtd fetches nothing until an application is chosen. query filters
// on kode and namalap, case insensitive.
func (s *SettingsService) ListTtd(ctx context.Context, aplikasiID int, query string) (TtdListState, error) {
	if aplikasiID <= 0 {
		return TtdListState{ListState: ListState[[]model.TtdLaporan]{Data: []model.TtdLaporan{}}}, nil
	}
	st, err := s.ttd.Read(ctx, aplikasiID)
	return filterTtd(st, query), err
}

func (s *SettingsService) RefreshTtd(ctx context.Context, aplikasiID int, query string) (TtdListState, error) {
	if aplikasiID <= 0 {
		return TtdListState{ListState: ListState[[]model.TtdLaporan]{Data: []model.TtdLaporan{}}}, nil
	}
	st, err := s.ttd.Refresh(ctx, aplikasiID)
	return filterTtd(st, query), err
}

func filterTtd(st ListState[[]model.TtdLaporan], query string) TtdListState {
	out := TtdListState{ListState: st, Total: len(st.Data)}
	q := strings.ToLower(strings.TrimSpace(query))
	if q != "" {
		filtered := make([]model.TtdLaporan, 0, len(st.Data))
		for _, t := range st.Data {
			if strings.Contains(strings.ToLower(t.Kode), q) || strings.Contains(strings.ToLower(t.Namalap), q) {
				filtered = append(filtered, t)
			}
		}
		out.Data = filtered
	}
	if len(out.Data) == 0 && !st.IsLoading {
		if out.Total == 0 {
			out.Empty = TtdEmptyNoData
		} else {
			out.Empty = TtdEmptyNoMatch
		}
	}
	return out
}

// UpdateTtd writes one row and revalidates the list of its application
func (s *SettingsService) UpdateTtd(ctx context.Context, aplikasiID, id int, payload model.TtdLaporanPayload) error {
	if err := s.settingsRepo.UpdateTtdLaporan(ctx, id, payload); err != nil {
		return err
	}
	if aplikasiID > 0 {
		refreshAfterWrite(ctx, s.ttd, aplikasiID)
	}
	return nil
}

func (s *SettingsService) DesktopSettings(ctx context.Context) (ListState[model.DesktopSettings], error) {
	return s.desktop.Read(ctx)
}

func (s *SettingsService) UpdateDesktopSettings(ctx context.Context, form model.DesktopSettingsForm) error {
	if err := s.settingsRepo.UpdateDesktopSettings(ctx, model.NewDesktopSettingsPayload(form)); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.desktop)
	return nil
}
