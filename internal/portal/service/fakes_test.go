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
	"sync"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/pkg/cache"
)

func newLQ() ListQueryConfig {
	return ListQueryConfig{
		Cache:     cache.NewFastCache(cache.FastCacheConfig{MaxBytes: 1 << 20}),
		RetryWait: 1,
	}
}

func tokenCtx(token string) context.Context {
	return client.WithToken(context.Background(), token)
}

type fakePermissionRepo struct {
	mu      sync.Mutex
	groups  []model.PermissionGroup
	getErr  error
	putErr  error
	updates []model.PermissionUpdate
	gets    int
	// release, when set, holds every PUT until a value is received
	release chan struct{}
	// gates hold the PUT of one menu until the channel is closed
	gates map[int]chan struct{}
	// menuErrs fail the PUT of one menu
	menuErrs map[int]error
}

func (f *fakePermissionRepo) GetMatrix(_ context.Context, _, _ int) ([]model.PermissionGroup, error) {
	f.mu.Lock()
	f.gets++
	f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return model.CloneGroups(f.groups), nil
}

func (f *fakePermissionRepo) UpdateMenuPermission(_ context.Context, update model.PermissionUpdate) error {
	f.mu.Lock()
	f.updates = append(f.updates, update)
	release := f.release
	gate := f.gates[update.MenuDetailID]
	err := f.putErr
	if menuErr, ok := f.menuErrs[update.MenuDetailID]; ok {
		err = menuErr
	}
	f.mu.Unlock()
	if release != nil {
		<-release
	}
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakePermissionRepo) sent() []model.PermissionUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.PermissionUpdate(nil), f.updates...)
}

type fakePortalRepo struct {
	mu        sync.Mutex
	apps      []model.Application
	menus     []model.Menu
	appCalls  int
	menuCalls int
}

func (f *fakePortalRepo) Dashboard(context.Context) ([]model.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appCalls++
	return f.apps, nil
}

func (f *fakePortalRepo) Menu(context.Context) ([]model.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.menuCalls++
	return model.NavigableMenus(f.menus), nil
}

type fakeSettingsRepo struct {
	ttd      map[int][]model.TtdLaporan
	ttdCalls int
	updated  []model.TtdLaporanPayload
}

func (f *fakeSettingsRepo) ListApplications(context.Context) ([]model.AplikasiItem, error) {
	return []model.AplikasiItem{{ID: 1, Nama: "Billing"}}, nil
}

func (f *fakeSettingsRepo) ListTtdLaporan(_ context.Context, aplikasiID int) ([]model.TtdLaporan, error) {
	f.ttdCalls++
	return f.ttd[aplikasiID], nil
}

func (f *fakeSettingsRepo) UpdateTtdLaporan(_ context.Context, _ int, payload model.TtdLaporanPayload) error {
	f.updated = append(f.updated, payload.Normalize())
	return nil
}

func (f *fakeSettingsRepo) ListParaf(context.Context) ([]model.Paraf, error) { return nil, nil }

func (f *fakeSettingsRepo) CreateParaf(context.Context, model.ParafPayload) error { return nil }

func (f *fakeSettingsRepo) UpdateParaf(context.Context, int, model.ParafPayload) error { return nil }

func (f *fakeSettingsRepo) DeleteParaf(context.Context, int) error { return nil }

func (f *fakeSettingsRepo) GetDesktopSettings(context.Context) (*model.DesktopSettings, error) {
	return &model.DesktopSettings{Headerlap1: "PDAM"}, nil
}

func (f *fakeSettingsRepo) UpdateDesktopSettings(context.Context, model.DesktopSettingsPayload) error {
	return nil
}
