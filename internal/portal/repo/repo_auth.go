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

type IAuthRepository interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error)
	Logout(ctx context.Context) error
}

type AuthRepo struct {
	*client.Client
}

func NewAuthRepo(c *client.Client) IAuthRepository {
	return &AuthRepo{Client: c}
}

// Login 登录, the token comes back in the body
func (r *AuthRepo) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error) {
	var result model.LoginResult
	if err := r.Post(ctx, authLoginPath, req, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &client.APIError{Status: 200, Path: authLoginPath, Message: result.Message}
	}
	return &result, nil
}

func (r *AuthRepo) Logout(ctx context.Context) error {
	return r.Post(ctx, authLogoutPath, nil, nil)
}
