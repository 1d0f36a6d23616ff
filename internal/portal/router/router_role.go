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
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) roleRouter(r fiber.Router) {
	roleGroup := r.Group("/roles")
	{
		roleGroup.Get("/", rt.listRoles)
		roleGroup.Post("/", rt.createRole)
		roleGroup.Post("/refresh", rt.refreshRoles)
		roleGroup.Put("/:id", rt.updateRole)
		roleGroup.Delete("/:id", rt.deleteRole)
		roleGroup.Post("/:roleId/permissions", rt.openPermissions) // ?app_id=
	}
}

func (rt *Router) listRoles(c *fiber.Ctx) error {
	st, err := rt.Services.Role.List(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) refreshRoles(c *fiber.Ctx) error {
	st, err := rt.Services.Role.Refresh(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) createRole(c *fiber.Ctx) error {
	var form model.RoleForm
	if err := rt.bind(c, &form); err != nil {
		return err
	}
	if err := rt.Services.Role.Create(c.UserContext(), form); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgRoleCreated, nil)
}

func (rt *Router) updateRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var form model.RoleForm
	if err := rt.bind(c, &form); err != nil {
		return err
	}
	if err := rt.Services.Role.Update(c.UserContext(), id, form); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgRoleUpdated, nil)
}

func (rt *Router) deleteRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := rt.Services.Role.Delete(c.UserContext(), id); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgRoleDeleted, nil)
}

// openPermissions starts a permission editor for the role and application
func (rt *Router) openPermissions(c *fiber.Ctx) error {
	roleID, err := paramID(c, "roleId")
	if err != nil {
		return err
	}
	appID := c.QueryInt("app_id")
	if appID <= 0 {
		return httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, t(c, msgMissingAppID, nil))
	}
	view, err := rt.Services.Permissions.Open(c.UserContext(), roleID, appID)
	if err != nil {
		return rt.fail(c, err)
	}
	c.Status(fiber.StatusCreated)
	c.Locals(middleware.DETAIL, rt.localizeView(c, view))
	return nil
}
