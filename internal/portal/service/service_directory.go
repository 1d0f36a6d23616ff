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
	"fmt"
	"time"

	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/internal/portal/repo"
	"github.com/go-arcade/portal/pkg/cache"
	"github.com/go-arcade/portal/pkg/log"
	"golang.org/x/sync/errgroup"
)

const (
	appCacheName  = "app_cache"
	menuCacheName = "menus_cache"
	userCacheName = "user"
	directoryTTL  = time.Hour
)

// DirectoryService owns the per session dashboard, sidebar and profile caches
type DirectoryService struct {
	apps    *ListQuery[[]model.Application]
	menus   *ListQuery[[]model.Menu]
	profile *cache.CachedQuery[model.User]
}

func NewDirectoryService(portalRepo repo.IPortalRepository, lq ListQueryConfig, sessionConf config.SessionConfig) *DirectoryService {
	dirConf := lq
	dirConf.TTL = directoryTTL

	profileTTL := sessionConf.MaxAge
	if profileTTL <= 0 {
		profileTTL = 7 * 24 * time.Hour
	}

	var profileOpts []cache.CachedQueryOption[model.User]
	profileOpts = append(profileOpts, cache.WithTTL[model.User](profileTTL), cache.WithLogPrefix[model.User]("[user]"))
	if lq.Observer != nil {
		profileOpts = append(profileOpts, cache.WithObserver[model.User](lq.Observer(userCacheName)))
	}

	return &DirectoryService{
		apps: NewListQuery(appCacheName, dirConf, []model.Application{}, func(ctx context.Context, _ ...any) ([]model.Application, error) {
			return portalRepo.Dashboard(ctx)
		}),
		menus: NewListQuery(menuCacheName, dirConf, []model.Menu{}, func(ctx context.Context, _ ...any) ([]model.Menu, error) {
			return portalRepo.Menu(ctx)
		}),
		// the profile is written at login, there is nothing to fetch it from
		profile: cache.NewCachedQuery[model.User](lq.Cache, func(params ...any) string {
			return fmt.Sprintf("%s:%v", userCacheName, params[0])
		}, nil, profileOpts...),
	}
}

// Dashboard application tiles, from app_cache while fresh
func (s *DirectoryService) Dashboard(ctx context.Context) (ListState[[]model.Application], error) {
	return s.apps.Read(ctx)
}

// Sidebar navigable menus, from menus_cache while fresh
func (s *DirectoryService) Sidebar(ctx context.Context) (ListState[[]model.Menu], error) {
	return s.menus.Read(ctx)
}

// CachedApplications never calls upstream
func (s *DirectoryService) CachedApplications(ctx context.Context) ([]model.Application, bool) {
	return s.apps.Peek(ctx)
}

// ResolveAppNames maps ids to cached application names, "ID: x" when unknown
func (s *DirectoryService) ResolveAppNames(ctx context.Context, ids []int) []model.AppRef {
	apps, _ := s.apps.Peek(ctx)
	names := make(map[int]string, len(apps))
	for _, a := range apps {
		names[a.ID] = a.Nama
	}
	out := make([]model.AppRef, 0, len(ids))
	for _, id := range ids {
		name, ok := names[id]
		if !ok {
			name = fmt.Sprintf("ID: %d", id)
		}
		out = append(out, model.AppRef{ID: id, Nama: name})
	}
	return out
}

func (s *DirectoryService) StoreProfile(ctx context.Context, user model.User) {
	user.Password = nil
	s.profile.Set(ctx, user, scopeOf(ctx))
}

func (s *DirectoryService) Profile(ctx context.Context) (model.User, bool) {
	return s.profile.Peek(ctx, scopeOf(ctx))
}

// Warm fills both directory caches concurrently
func (s *DirectoryService) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.apps.Refresh(gctx)
		return err
	})
	g.Go(func() error {
		_, err := s.menus.Refresh(gctx)
		return err
	})
	return g.Wait()
}

// ClearSession drops app_cache, menus_cache and user for the calling session
func (s *DirectoryService) ClearSession(ctx context.Context) {
	if err := s.apps.Invalidate(ctx); err != nil {
		log.WithContext(ctx).Warnw("clear app cache", "error", err)
	}
	if err := s.menus.Invalidate(ctx); err != nil {
		log.WithContext(ctx).Warnw("clear menu cache", "error", err)
	}
	if err := s.profile.Invalidate(ctx, scopeOf(ctx)); err != nil {
		log.WithContext(ctx).Warnw("clear profile cache", "error", err)
	}
}
