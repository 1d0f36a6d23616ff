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
	"errors"

	"github.com/go-arcade/portal/internal/portal/client"
)

var (
	ErrSessionNotFound = errors.New("permission editor session not found")
	ErrMenuNotFound    = errors.New("menu not found in permission matrix")
	ErrNoAccess        = errors.New("menu has no access")
	ErrMenuBusy        = errors.New("menu permission write already in flight")
)

// userMessage strips the cache key wrapping before picking the text
func userMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	return client.Message(err)
}
