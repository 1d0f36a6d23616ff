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

package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultCookie = "token"
	defaultMaxAge = 7 * 24 * time.Hour
)

// Fingerprint scopes cache keys to one bearer token without storing it
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}

// Expired reports whether token is a JWT whose exp has passed.
// Opaque tokens are never expired locally; the upstream decides.
func Expired(token string, now time.Time) bool {
	if token == "" {
		return true
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}

func cookieName(conf config.SessionConfig) string {
	if conf.CookieName == "" {
		return defaultCookie
	}
	return conf.CookieName
}

// Token reads the session token from the request cookie
func Token(c *fiber.Ctx, conf config.SessionConfig) string {
	return c.Cookies(cookieName(conf))
}

// SetCookie stores token the way the login screen does
func SetCookie(c *fiber.Ctx, conf config.SessionConfig, token string) {
	maxAge := conf.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName(conf),
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(maxAge),
		MaxAge:   int(maxAge.Seconds()),
		Secure:   conf.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie
func ClearCookie(c *fiber.Ctx, conf config.SessionConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     cookieName(conf),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   conf.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
