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

	"github.com/go-arcade/portal/pkg/log"
)

// mapState converts the data of a list state, keeping its flags
func mapState[T, U any](st ListState[T], f func(T) U) ListState[U] {
	return ListState[U]{
		Data:         f(st.Data),
		Error:        st.Error,
		IsLoading:    st.IsLoading,
		IsValidating: st.IsValidating,
	}
}

// refreshAfterWrite revalidates a list once a mutation went through.
// The write already succeeded so a failed refresh is only logged.
func refreshAfterWrite[T any](ctx context.Context, q *ListQuery[T], params ...any) {
	if _, err := q.Refresh(ctx, params...); err != nil {
		log.WithContext(ctx).Warnw("refresh after write", "list", q.name, "error", err)
	}
}
