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
	"net/url"
	"strings"

	"github.com/go-arcade/portal/internal/portal/session"
	"github.com/gofiber/fiber/v2"
)

func (rt *Router) portalRouter(r fiber.Router) {
	r.Get("/", rt.requireSession, rt.dashboard)
	r.Get("/sidebar", rt.requireSession, rt.sidebar)
	r.Get("/redirect/:app", rt.requireSession, rt.redirectToApp)
	r.Get("/authentication/receiver", rt.receiver)
}

func (rt *Router) dashboard(c *fiber.Ctx) error {
	st, err := rt.Services.Directory.Dashboard(c.UserContext())
	return readList(rt, c, st, err)
}

func (rt *Router) sidebar(c *fiber.Ctx) error {
	st, err := rt.Services.Directory.Sidebar(c.UserContext())
	return readList(rt, c, st, err)
}

// redirectToApp hands the session over to another application. Nothing
// navigates when the hand-off cannot be prepared.
func (rt *Router) redirectToApp(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("app"))
	if err != nil {
		name = c.Params("app")
	}
	target, err := rt.Services.SSO.RedirectURL(c.UserContext(), name)
	if err != nil {
		return rt.fail(c, err)
	}
	return c.Redirect(target, fiber.StatusFound)
}

// receiver accepts a hand-off from another application
func (rt *Router) receiver(c *fiber.Ctx) error {
	// a raw "+" in the query decodes to a space
	data := strings.ReplaceAll(c.Query("data"), " ", "+")
	token, err := rt.Services.SSO.Receive(c.UserContext(), data)
	if err != nil {
		return rt.fail(c, err)
	}
	session.SetCookie(c, rt.Session, token)
	return c.Redirect("/", fiber.StatusFound)
}
