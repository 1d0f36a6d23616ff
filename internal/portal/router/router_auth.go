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

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/internal/portal/session"
	httpx "github.com/go-arcade/portal/pkg/http"
	"github.com/go-arcade/portal/pkg/http/middleware"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) authRouter(r fiber.Router) {
	authGroup := r.Group("/auth")
	{
		authGroup.Get("/login", rt.loginPage)
		authGroup.Post("/login", rt.login)
		authGroup.Post("/logout", rt.logout)
		authGroup.Get("/profile", rt.requireSession, rt.profile)
	}
}

// loginPage sends signed in users home
func (rt *Router) loginPage(c *fiber.Ctx) error {
	if hasSession(c) {
		return c.Redirect("/", fiber.StatusFound)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"authenticated": false})
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginRequest
	if err := rt.bind(c, &req); err != nil {
		return err
	}

	result, err := rt.Services.Auth.Login(c.UserContext(), req)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status < fiber.StatusInternalServerError {
			msg := client.MessageOr(err, t(c, msgLoginFailed, nil))
			return httpx.NewError(fiber.StatusUnauthorized, httpx.Unauthorized, msg).WithToast(msg).Wrap(err)
		}
		return rt.failWith(c, err, t(c, msgLoginFailed, nil))
	}

	session.SetCookie(c, rt.Session, result.Token)
	return done(c, msgLoginOK, fiber.Map{"user": result.User, "redirect": "/"})
}

func (rt *Router) logout(c *fiber.Ctx) error {
	rt.Services.Auth.Logout(c.UserContext())
	session.ClearCookie(c, rt.Session)
	if wantsHTML(c) {
		return c.Redirect(rt.Session.LoginPath, fiber.StatusFound)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"redirect": rt.Session.LoginPath})
	return nil
}

func (rt *Router) profile(c *fiber.Ctx) error {
	user, ok := rt.Services.Auth.Profile(c.UserContext())
	if !ok {
		return httpx.NewError(fiber.StatusNotFound, httpx.NotFound, t(c, msgProfileMissing, nil))
	}
	c.Locals(middleware.DETAIL, model.NewUserView(user))
	return nil
}
