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
	"time"

	"github.com/go-arcade/portal/internal/portal/client"
	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/internal/portal/session"
	"github.com/go-arcade/portal/pkg/cryptojs"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/metrics"
)

// SSOReason is also the message id of the failure text
type SSOReason string

const (
	SSOSessionExpired   SSOReason = "sso.session_expired"
	SSODirectoryMissing SSOReason = "sso.directory_missing"
	SSOCipherFailed     SSOReason = "sso.cipher_failed"
	SSONotRegistered    SSOReason = "sso.not_registered"
	SSOSecretMissing    SSOReason = "sso.secret_missing"
	SSODecryptFailed    SSOReason = "sso.decrypt_failed"
	SSOInvalidToken     SSOReason = "sso.invalid_token"
)

// SSOTexts default wording per reason, {{.Name}} is the application name
var SSOTexts = map[SSOReason]string{
	SSOSessionExpired:   "Sesi Anda habis.",
	SSODirectoryMissing: "Konfigurasi aplikasi tidak ditemukan.",
	SSOCipherFailed:     "Gagal mengamankan koneksi.",
	SSONotRegistered:    "Aplikasi {{.Name}} belum terdaftar.",
	SSOSecretMissing:    "Konfigurasi Server Error: Secret Key belum diset.",
	SSODecryptFailed:    "Gagal mendekripsi token",
	SSOInvalidToken:     "Token tidak valid atau gagal didekripsi",
}

const receiverPath = "/authentication/receiver"

type SSOError struct {
	Reason SSOReason
	Name   string
	Err    error
}

func (e *SSOError) Error() string {
	msg := SSOTexts[e.Reason]
	if e.Name != "" {
		msg = strings.ReplaceAll(msg, "{{.Name}}", e.Name)
	}
	return msg
}

func (e *SSOError) Unwrap() error { return e.Err }

// TemplateData for localising the reason
func (e *SSOError) TemplateData() map[string]any {
	return map[string]any{"Name": e.Name}
}

type SSOService struct {
	conf      config.SSOConfig
	directory *DirectoryService
	metrics   *metrics.Portal
	now       func() time.Time
}

func NewSSOService(conf config.SSOConfig, directory *DirectoryService, m *metrics.Portal) *SSOService {
	return &SSOService{conf: conf, directory: directory, metrics: m, now: time.Now}
}

// RedirectURL builds the hand-off URL of the application named name.
// The checks run in a fixed order and the first failure wins.
func (s *SSOService) RedirectURL(ctx context.Context, name string) (string, error) {
	token := client.TokenFrom(ctx)
	if token == "" {
		return "", s.fail(ctx, &SSOError{Reason: SSOSessionExpired})
	}

	apps, ok := s.directory.CachedApplications(ctx)
	if !ok {
		return "", s.fail(ctx, &SSOError{Reason: SSODirectoryMissing})
	}

	cipher, err := cryptojs.Encrypt(token, s.conf.SecretKey)
	if err != nil {
		return "", s.fail(ctx, &SSOError{Reason: SSOCipherFailed, Err: err})
	}

	for _, app := range apps {
		if app.Nama == name {
			s.metrics.SSORedirect("ok")
			return ReceiverURL(app.URL, cipher), nil
		}
	}
	return "", s.fail(ctx, &SSOError{Reason: SSONotRegistered, Name: name})
}

// ReceiverURL is where a sub application accepts the encrypted token
func ReceiverURL(appURL, cipher string) string {
	return strings.TrimRight(appURL, "/") + receiverPath + "?data=" + url.QueryEscape(cipher)
}

// DecryptToken reverses the hand-off cipher
func (s *SSOService) DecryptToken(ciphertext string) (string, error) {
	if s.conf.SecretKey == "" {
		return "", &SSOError{Reason: SSOSecretMissing, Err: cryptojs.ErrEmptyPassphrase}
	}
	token, err := cryptojs.Decrypt(ciphertext, s.conf.SecretKey)
	if err != nil {
		return "", &SSOError{Reason: SSODecryptFailed, Err: err}
	}
	if token == "" {
		return "", &SSOError{Reason: SSODecryptFailed}
	}
	return token, nil
}

// Receive turns the data parameter of an incoming hand-off into a
// session token. Expired JWTs are refused.
func (s *SSOService) Receive(ctx context.Context, data string) (string, error) {
	token, err := s.DecryptToken(data)
	if err != nil {
		log.WithContext(ctx).Warnw("sso receiver decrypt", "error", err, "cause", errors.Unwrap(err))
		s.metrics.SSORedirect("rejected")
		return "", &SSOError{Reason: SSOInvalidToken, Err: err}
	}
	if session.Expired(token, s.now()) {
		s.metrics.SSORedirect("rejected")
		return "", &SSOError{Reason: SSOInvalidToken}
	}
	s.metrics.SSORedirect("received")
	return token, nil
}

func (s *SSOService) fail(ctx context.Context, err *SSOError) error {
	if err.Err != nil {
		log.WithContext(ctx).Warnw("sso redirect", "reason", err.Reason, "cause", err.Err)
	} else {
		log.WithContext(ctx).Infow("sso redirect refused", "reason", err.Reason, "app", err.Name)
	}
	s.metrics.SSORedirect(string(err.Reason))
	return err
}
