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
	"github.com/go-arcade/portal/internal/portal/service"
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) settingsRouter(r fiber.Router) {
	parafGroup := r.Group("/paraf")
	{
		parafGroup.Get("/", rt.listParaf)
		parafGroup.Post("/", rt.createParaf)
		parafGroup.Post("/refresh", rt.refreshParaf)
		parafGroup.Put("/:id", rt.updateParaf)
		parafGroup.Delete("/:id", rt.deleteParaf)
	}

	ttdGroup := r.Group("/ttd")
	{
		ttdGroup.Get("/applications", rt.listTtdApplications)
		ttdGroup.Get("/", rt.listTtd)            // ?aplikasi_id=&q=
		ttdGroup.Post("/refresh", rt.refreshTtd) // ?aplikasi_id=&q=
		ttdGroup.Put("/:id", rt.updateTtd)       // ?aplikasi_id=
	}

	r.Get("/settings", rt.getDesktopSettings)
	r.Put("/settings", rt.updateDesktopSettings)
}

func (rt *Router) listParaf(c *fiber.Ctx) error {
	st, err := rt.Services.Settings.ListParaf(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) refreshParaf(c *fiber.Ctx) error {
	st, err := rt.Services.Settings.RefreshParaf(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) createParaf(c *fiber.Ctx) error {
	var form model.ParafForm
	if err := rt.bind(c, &form); err != nil {
		return err
	}
	if err := rt.Services.Settings.CreateParaf(c.UserContext(), form); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgParafCreated, nil)
}

func (rt *Router) updateParaf(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var form model.ParafForm
	if err := rt.bind(c, &form); err != nil {
		return err
	}
	if err := rt.Services.Settings.UpdateParaf(c.UserContext(), id, form); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgParafUpdated, nil)
}

func (rt *Router) deleteParaf(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := rt.Services.Settings.DeleteParaf(c.UserContext(), id); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgParafDeleted, nil)
}

func (rt *Router) listTtdApplications(c *fiber.Ctx) error {
	st, err := rt.Services.Settings.Applications(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) listTtd(c *fiber.Ctx) error {
	st, err := rt.Services.Settings.ListTtd(c.UserContext(), c.QueryInt("aplikasi_id"), c.Query("q"))
	return rt.ttdResult(c, st, err)
}

func (rt *Router) refreshTtd(c *fiber.Ctx) error {
	st, err := rt.Services.Settings.RefreshTtd(c.UserContext(), c.QueryInt("aplikasi_id"), c.Query("q"))
	return rt.ttdResult(c, st, err)
}

type ttdResponse struct {
	service.TtdListState
	EmptyText string `json:"emptyText,omitempty"`
}

func (rt *Router) ttdResult(c *fiber.Ctx, st service.TtdListState, err error) error {
	resp := ttdResponse{TtdListState: st}
	if st.Empty != "" {
		resp.EmptyText = t(c, st.Empty, nil)
	}
	return rt.readState(c, resp, err)
}

func (rt *Router) updateTtd(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var payload model.TtdLaporanPayload
	if err := c.BodyParser(&payload); err != nil {
		return httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, err.Error()).
			WithToast(t(c, msgFormInvalid, nil))
	}
	if err := rt.Services.Settings.UpdateTtd(c.UserContext(), c.QueryInt("aplikasi_id"), id, payload); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgTtdUpdated, nil)
}

func (rt *Router) getDesktopSettings(c *fiber.Ctx) error {
	st, err := rt.Services.Settings.DesktopSettings(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) updateDesktopSettings(c *fiber.Ctx) error {
	var form model.DesktopSettingsForm
	if err := rt.bind(c, &form); err != nil {
		return err
	}
	if err := rt.Services.Settings.UpdateDesktopSettings(c.UserContext(), form); err != nil {
		return rt.fail(c, err)
	}
	return done(c, msgSettingsUpdated, nil)
}
