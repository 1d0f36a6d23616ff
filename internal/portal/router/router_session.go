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
	"time"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/service"
	"github.com/go-arcade/portal/internal/portal/session"
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/http/middleware"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// sessionMiddleware puts the cookie token on the request context. An
// expired JWT counts as no token.
func (rt *Router) sessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := session.Token(c, rt.Session)
		if token != "" && !session.Expired(token, time.Now()) {
			c.SetUserContext(client.WithToken(c.UserContext(), token))
		}
		return c.Next()
	}
}

func hasSession(c *fiber.Ctx) bool {
	return client.TokenFrom(c.UserContext()) != ""
}

// requireSession guards every screen except the login page
func (rt *Router) requireSession(c *fiber.Ctx) error {
	if hasSession(c) {
		return c.Next()
	}
	return rt.toLogin(c)
}

// toLogin sends navigations to the login page and answers API calls
// with 401 and the page to go to.
func (rt *Router) toLogin(c *fiber.Ctx) error {
	if wantsHTML(c) && c.Path() != rt.Session.LoginPath {
		return c.Redirect(rt.Session.LoginPath, fiber.StatusFound)
	}
	e := httpx.NewError(fiber.StatusUnauthorized, httpx.Unauthorized, t(c, msgSessionExpired, nil))
	e.Detail = fiber.Map{"redirect": rt.Session.LoginPath}
	return e
}

// expire drops every trace of a session the upstream rejected
func (rt *Router) expire(c *fiber.Ctx) error {
	ctx := c.UserContext()
	log.WithContext(ctx).Infow("upstream rejected session", "path", c.Path())
	rt.Services.Auth.Expire(ctx)
	session.ClearCookie(c, rt.Session)
	return rt.toLogin(c)
}

// fail maps a service error onto the response envelope. The toast is
// the server message when there is one.
func (rt *Router) fail(c *fiber.Ctx, err error) error {
	return rt.failWith(c, err, "")
}

func (rt *Router) failWith(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return rt.expire(c)
	}

	var ssoErr *service.SSOError
	if errors.As(err, &ssoErr) {
		msg := t(c, string(ssoErr.Reason), ssoErr.TemplateData())
		return httpx.NewError(fiber.StatusUnprocessableEntity, httpx.SSOFailed, msg).WithToast(msg).Wrap(err)
	}

	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrMenuNotFound):
		return httpx.NewError(fiber.StatusNotFound, httpx.NotFound, err.Error()).Wrap(err)
	case errors.Is(err, service.ErrNoAccess):
		msg := t(c, msgNoAccess, nil)
		return httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, msg).WithToast(msg).Wrap(err)
	case errors.Is(err, service.ErrMenuBusy):
		msg := t(c, msgMenuBusy, nil)
		return httpx.NewError(fiber.StatusConflict, httpx.Conflict, msg).Wrap(err)
	}

	var he *httpx.Error
	if errors.As(err, &he) {
		return he
	}

	msg := client.Message(err)
	if fallback != "" {
		msg = client.MessageOr(err, fallback)
	}
	if msg == client.UnknownError {
		msg = t(c, msgUnknownError, nil)
	}
	log.WithContext(c.UserContext()).Warnw("upstream call failed", "path", c.Path(), "error", err)
	return httpx.NewError(fiber.StatusBadGateway, httpx.Failed, msg).WithToast(msg).Wrap(err)
}

// readList renders a list state. A failed fetch is still a 200 with
// the stale data and the error text, unless the session expired.
func readList[T any](rt *Router, c *fiber.Ctx, st service.ListState[T], err error) error {
	return rt.readState(c, st, err)
}

func (rt *Router) readState(c *fiber.Ctx, state any, err error) error {
	if err != nil && errors.Is(err, client.ErrUnauthorized) {
		return rt.expire(c)
	}
	c.Locals(middleware.DETAIL, state)
	return nil
}

// done answers a successful write with its toast
func done(c *fiber.Ctx, msgID string, detail any) error {
	c.Locals(middleware.TOAST, httpx.SuccessToast(t(c, msgID, nil)))
	if detail != nil {
		c.Locals(middleware.DETAIL, detail)
		return nil
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func paramID(c *fiber.Ctx, key string) (int, error) {
	id, err := c.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, httpx.NewError(fiber.StatusBadRequest, httpx.BadRequest, t(c, msgInvalidID, nil))
	}
	return id, nil
}
