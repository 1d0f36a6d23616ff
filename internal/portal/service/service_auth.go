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

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/internal/portal/repo"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/safe"
	"github.com/go-arcade/portal/pkg/trace"
)

type AuthService struct {
	authRepo  repo.IAuthRepository
	directory *DirectoryService
}

func NewAuthService(authRepo repo.IAuthRepository, directory *DirectoryService) *AuthService {
	return &AuthService{authRepo: authRepo, directory: directory}
}

// Login exchanges the credentials for a token, caches the profile and
// warms the directory caches in the background.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	result, err := s.authRepo.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	sessionCtx := client.WithToken(ctx, result.Token)
	if result.User != nil {
		s.directory.StoreProfile(sessionCtx, *result.User)
	}

	safe.GoCtx(trace.Detach(sessionCtx), func(ctx context.Context) {
		if err := s.directory.Warm(ctx); err != nil {
			log.WithContext(ctx).Warnw("warm directory cache after login", "error", err)
		}
	})
	return result, nil
}

// Logout is best effort upstream, the local session state is always dropped
func (s *AuthService) Logout(ctx context.Context) {
	if client.TokenFrom(ctx) == "" {
		return
	}
	if err := s.authRepo.Logout(ctx); err != nil {
		log.WithContext(ctx).Warnw("upstream logout", "error", err)
	}
	s.directory.ClearSession(ctx)
}

// Profile returns the user cached at login
func (s *AuthService) Profile(ctx context.Context) (model.User, bool) {
	return s.directory.Profile(ctx)
}

// Expire drops the session caches after the upstream rejected the token
func (s *AuthService) Expire(ctx context.Context) {
	s.directory.ClearSession(ctx)
}
