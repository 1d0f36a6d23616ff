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
	"errors"
	"sync"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/internal/portal/service"
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/http/middleware"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/safe"
	"github.com/go-arcade/portal/pkg/ws"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) permissionRouter(r fiber.Router) {
	permGroup := r.Group("/permissions")
	{
		permGroup.Get("/:session", rt.viewPermissions)
		permGroup.Delete("/:session", rt.closePermissions)
		permGroup.Put("/:session/menus/:menuId/access", rt.toggleMenuAccess)
		permGroup.Put("/:session/menus/:menuId", rt.setMenuPermissions)
		permGroup.Get("/:session/events", ws.Upgrade, keepStreamToken, ws.Handle(rt.notices))
	}
}

type toggleAccessReq struct {
	GroupID int  `json:"groupId"`
	Enabled bool `json:"enabled"`
}

type setPermissionsReq struct {
	GroupID     int      `json:"groupId"`
	Permissions []string `json:"permissions"`
}

func (rt *Router) viewPermissions(c *fiber.Ctx) error {
	view, err := rt.Services.Permissions.View(c.UserContext(), c.Params("session"))
	if err != nil {
		return rt.fail(c, err)
	}
	c.Locals(middleware.DETAIL, rt.localizeView(c, view))
	return nil
}

func (rt *Router) closePermissions(c *fiber.Ctx) error {
	if err := rt.Services.Permissions.Close(c.UserContext(), c.Params("session")); err != nil {
		return rt.fail(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) toggleMenuAccess(c *fiber.Ctx) error {
	menuID, err := paramID(c, "menuId")
	if err != nil {
		return err
	}
	var req toggleAccessReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, err.Error())
	}
	view, err := rt.Services.Permissions.ToggleMenuAccess(c.UserContext(), c.Params("session"), req.GroupID, menuID, req.Enabled)
	return rt.editorResult(c, view, err)
}

func (rt *Router) setMenuPermissions(c *fiber.Ctx) error {
	menuID, err := paramID(c, "menuId")
	if err != nil {
		return err
	}
	var req setPermissionsReq
	if err := c.BodyParser(&req); err != nil {
		return httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, err.Error())
	}
	perms, err := model.ParsePermissions(req.Permissions...)
	if err != nil {
		return httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, t(c, msgBadPermissions, nil)).Wrap(err)
	}
	view, err := rt.Services.Permissions.SetMenuPermissions(c.UserContext(), c.Params("session"), req.GroupID, menuID, perms)
	return rt.editorResult(c, view, err)
}

// editorResult answers with the optimistic view. A rejected mutation
// still carries the unchanged view.
func (rt *Router) editorResult(c *fiber.Ctx, view *service.EditorView, err error) error {
	if err == nil {
		c.Status(fiber.StatusAccepted)
		c.Locals(middleware.DETAIL, rt.localizeView(c, view))
		return nil
	}
	e := rt.fail(c, err)
	var he *httpx.Error
	if view != nil && errors.As(e, &he) {
		he.Detail = rt.localizeView(c, view)
	}
	return e
}

func (rt *Router) localizeView(c *fiber.Ctx, view *service.EditorView) *service.EditorView {
	for i := range view.Notices {
		view.Notices[i].Message = t(c, view.Notices[i].ID, nil)
	}
	for i := range view.Rows {
		if view.Rows[i].Kind == service.RowEmpty {
			view.Rows[i].Message = t(c, service.MsgPermissionNoMenu, nil)
		}
	}
	return view
}

const localStreamToken = "portal.stream_token"

// keepStreamToken carries the session token across the websocket upgrade
func keepStreamToken(c *fiber.Ctx) error {
	c.Locals(localStreamToken, client.TokenFrom(c.UserContext()))
	return c.Next()
}

// noticeStream forwards editor notices to websocket subscribers
type noticeStream struct {
	rt      *Router
	mu      sync.Mutex
	cancels map[string]func()
}

func newNoticeStream(rt *Router) *noticeStream {
	return &noticeStream{rt: rt, cancels: make(map[string]func())}
}

func (s *noticeStream) OnConnect(conn ws.Conn) error {
	token, _ := conn.Locals(localStreamToken).(string)
	ctx := client.WithToken(conn.Context(), token)
	notices, cancel, err := s.rt.Services.Permissions.Subscribe(ctx, conn.Param("session"))
	if err != nil {
		_ = conn.WriteJSON(fiber.Map{"error": err.Error()})
		return err
	}
	s.mu.Lock()
	s.cancels[conn.ID()] = cancel
	s.mu.Unlock()

	safe.Go(func() {
		defer conn.Close()
		for {
			select {
			case n, ok := <-notices:
				if !ok {
					return
				}
				if err := conn.WriteJSON(n); err != nil {
					return
				}
			case <-conn.Context().Done():
				return
			}
		}
	})
	return nil
}

// OnMessage ignores client frames, the stream is one way
func (s *noticeStream) OnMessage(ws.Conn, int, []byte) error { return nil }

func (s *noticeStream) OnDisconnect(conn ws.Conn, err error) {
	s.mu.Lock()
	cancel, ok := s.cancels[conn.ID()]
	delete(s.cancels, conn.ID())
	s.mu.Unlock()
	if ok {
		cancel()
	}
	if err != nil && !errors.Is(err, service.ErrSessionNotFound) {
		log.Debugw("notice stream closed", "conn", conn.ID(), "error", err)
	}
}
