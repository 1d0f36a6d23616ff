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

package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = redis.Nil

// ICache is the key-value store behind every portal cache.
// Implementations must be safe for concurrent use.
type ICache interface {
	// Get returns the stored value or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key; ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate drops the given keys; missing keys are ignored.
	Invalidate(ctx context.Context, keys ...string) error
}

// Conf selects and configures the cache backend.
type Conf struct {
	Mode          string // local | redis
	LocalMaxBytes int
	Redis         Redis
}
