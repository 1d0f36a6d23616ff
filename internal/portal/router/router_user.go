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

package router

import (
	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) userRouter(r fiber.Router) {
	userGroup := r.Group("/users")
	{
		userGroup.Get("/", rt.listUsers)
		userGroup.Post("/", rt.createUser)
		userGroup.Post("/refresh", rt.refreshUsers)
		userGroup.Put("/:id", rt.updateUser)
		userGroup.Delete("/:id", rt.deleteUser)
	}
}

func (rt *Router) listUsers(c *fiber.Ctx) error {
	st, err := rt.Services.User.List(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) refreshUsers(c *fiber.Ctx) error {
	st, err := rt.Services.User.Refresh(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) createUser(c *fiber.Ctx) error {
	form := model.UserForm{Create: true}
	if err := rt.bind(c, &form); err != nil {
		return err
	}
	if err := rt.Services.User.Create(c.UserContext(), form); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgUserCreated, nil)
}

func (rt *Router) updateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var form model.UserForm
	if err := rt.bind(c, &form); err != nil {
		return err
	}
	if err := rt.Services.User.Update(c.UserContext(), id, form); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgUserUpdated, nil)
}

func (rt *Router) deleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := rt.Services.User.Delete(c.UserContext(), id); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgUserDeleted, nil)
}
