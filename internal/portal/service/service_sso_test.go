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
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/model"
	"github.com/go-arcade/portal/pkg/cryptojs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "portal-shared-secret"

func newSSO(t *testing.T, secret string, apps []model.Application) (*SSOService, *DirectoryService) {
	t.Helper()
	dir := NewDirectoryService(&fakePortalRepo{apps: apps}, newLQ(), config.SessionConfig{})
	return NewSSOService(config.SSOConfig{SecretKey: secret}, dir, nil), dir
}

func ssoReason(t *testing.T, err error) SSOReason {
	t.Helper()
	var ssoErr *SSOError
	require.True(t, errors.As(err, &ssoErr), "want SSOError, got %v", err)
	return ssoErr.Reason
}

func TestSSO_RedirectURL(t *testing.T) {
	svc, dir := newSSO(t, testSecret, []model.Application{{ID: 2, Nama: "Billing", URL: "https://billing.example.com/"}})
	ctx := tokenCtx("eyJhbGciOiJIUzI1NiJ9.session-token")
	_, err := dir.Dashboard(ctx)
	require.NoError(t, err)

	target, err := svc.RedirectURL(ctx, "Billing")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(target, "https://billing.example.com/authentication/receiver?data="))

	u, err := url.Parse(target)
	require.NoError(t, err)
	plain, err := cryptojs.Decrypt(u.Query().Get("data"), testSecret)
	require.NoError(t, err)
	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.session-token", plain)
}

func TestSSO_FailureOrder(t *testing.T) {
	apps := []model.Application{{ID: 2, Nama: "Billing", URL: "https://billing.example.com"}}

	t.Run("no session", func(t *testing.T) {
		svc, _ := newSSO(t, "", nil)
		_, err := svc.RedirectURL(context.Background(), "Billing")
		assert.Equal(t, SSOSessionExpired, ssoReason(t, err))
		assert.Equal(t, "Sesi Anda habis.", err.Error())
	})

	t.Run("no directory cached", func(t *testing.T) {
		svc, _ := newSSO(t, "", apps)
		_, err := svc.RedirectURL(tokenCtx("tok"), "Billing")
		assert.Equal(t, SSODirectoryMissing, ssoReason(t, err))
	})

	t.Run("missing secret beats unknown name", func(t *testing.T) {
		svc, dir := newSSO(t, "", apps)
		ctx := tokenCtx("tok")
		_, _ = dir.Dashboard(ctx)
		_, err := svc.RedirectURL(ctx, "Nope")
		assert.Equal(t, SSOCipherFailed, ssoReason(t, err))
		assert.Equal(t, "Gagal mengamankan koneksi.", err.Error())
	})

	t.Run("not registered", func(t *testing.T) {
		svc, dir := newSSO(t, testSecret, apps)
		ctx := tokenCtx("tok")
		_, _ = dir.Dashboard(ctx)
		target, err := svc.RedirectURL(ctx, "Gudang")
		assert.Empty(t, target)
		assert.Equal(t, SSONotRegistered, ssoReason(t, err))
		assert.Equal(t, "Aplikasi Gudang belum terdaftar.", err.Error())
	})
}

func TestSSO_Receive(t *testing.T) {
	svc, _ := newSSO(t, testSecret, nil)
	ctx := context.Background()

	valid, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("upstream"))
	require.NoError(t, err)
	cipher, err := cryptojs.Encrypt(valid, testSecret)
	require.NoError(t, err)

	token, err := svc.Receive(ctx, cipher)
	require.NoError(t, err)
	assert.Equal(t, valid, token)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("upstream"))
	require.NoError(t, err)
	cipher, err = cryptojs.Encrypt(expired, testSecret)
	require.NoError(t, err)
	_, err = svc.Receive(ctx, cipher)
	assert.Equal(t, SSOInvalidToken, ssoReason(t, err))

	_, err = svc.Receive(ctx, "bm90LWEtY2lwaGVy")
	assert.Equal(t, SSOInvalidToken, ssoReason(t, err))
	assert.Equal(t, "Token tidak valid atau gagal didekripsi", err.Error())
}

func TestSSO_DecryptToken(t *testing.T) {
	svc, _ := newSSO(t, "", nil)
	_, err := svc.DecryptToken("anything")
	assert.Equal(t, SSOSecretMissing, ssoReason(t, err))
	assert.Equal(t, "Konfigurasi Server Error: Secret Key belum diset.", err.Error())

	svc, _ = newSSO(t, "k", nil)
	plain, err := svc.DecryptToken("U2FsdGVkX1+hssPU5fYHGH5Yml3CJx3k0GAS7nfKYMI=")
	require.NoError(t, err)
	assert.Equal(t, "hello", plain)

	_, err = svc.DecryptToken("U2FsdGVkX1+hssPU5fYHGH5Yml3CJx3k0GAS7nfKYMI")
	assert.Equal(t, SSODecryptFailed, ssoReason(t, err))
}
