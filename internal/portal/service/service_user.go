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

	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/internal/portal/repo"
)

type UserService struct {
	userRepo repo.IUserRepository
	users    *ListQuery[[]model.User]
}

func NewUserService(userRepo repo.IUserRepository, lq ListQueryConfig) *UserService {
	return &UserService{
		userRepo: userRepo,
		users: NewListQuery("users", lq, []model.User{}, func(ctx context.Context, _ ...any) ([]model.User, error) {
			return userRepo.ListUsers(ctx)
		}),
	}
}

func userViews(users []model.User) []model.UserView {
	out := make([]model.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, model.NewUserView(u))
	}
	return out
}

func (s *UserService) List(ctx context.Context) (ListState[[]model.UserView], error) {
	st, err := s.users.Read(ctx)
	return mapState(st, userViews), err
}

func (s *UserService) Refresh(ctx context.Context) (ListState[[]model.UserView], error) {
	st, err := s.users.Refresh(ctx)
	return mapState(st, userViews), err
}

func (s *UserService) Create(ctx context.Context, form model.UserForm) error {
	payload, err := model.NewUserPayload(form)
	if err != nil {
		return err
	}
	if err := s.userRepo.CreateUser(ctx, payload); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.users)
	return nil
}

// Update keeps the current password when the form leaves it empty
func (s *UserService) Update(ctx context.Context, id int, form model.UserForm) error {
	payload, err := model.NewUserPayload(form)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateUser(ctx, id, payload); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.users)
	return nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return err
	}
	refreshAfterWrite(ctx, s.users)
	return nil
}
