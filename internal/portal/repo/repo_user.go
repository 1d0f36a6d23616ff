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

type IUserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateUser(ctx context.Context, payload model.UserPayload) error
	UpdateUser(ctx context.Context, id int, payload model.UserPayload) error
	DeleteUser(ctx context.Context, id int) error
}

type UserRepo struct {
	*client.Client
}

func NewUserRepo(c *client.Client) IUserRepository {
	return &UserRepo{Client: c}
}

// ListUsers the list is wrapped under "users"
func (r *UserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var resp model.UserListResponse
	if err := r.Get(ctx, usersPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return []model.User{}, nil
	}
	return resp.Users, nil
}

func (r *UserRepo) CreateUser(ctx context.Context, payload model.UserPayload) error {
	return r.Post(ctx, usersPath, payload, nil)
}

func (r *UserRepo) UpdateUser(ctx context.Context, id int, payload model.UserPayload) error {
	return r.Put(ctx, itemPath(usersPath, id), payload, nil)
}

func (r *UserRepo) DeleteUser(ctx context.Context, id int) error {
	return r.Delete(ctx, itemPath(usersPath, id), nil)
}
