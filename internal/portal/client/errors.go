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

package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthorized marks an expired or rejected session. Login failures
// are plain APIErrors.
var ErrUnauthorized = errors.New("session unauthorized")

// UnknownError is what Message reports for an error without any text
const UnknownError = "Unknown error"

// APIError non-2xx upstream response
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status code %d", e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == 401 && !isLoginPath(e.Path) {
		return ErrUnauthorized
	}
	return nil
}

func isLoginPath(path string) bool {
	return strings.Contains(path, "/login")
}

// Message is the text shown to the user for err: the server message,
// then the error text, then "Unknown error".
func Message(err error) string {
	if err == nil {
		return UnknownError
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownError
}

// MessageOr is Message with a caller fallback when no server message exists
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
