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

	"github.com/go-arcade/portal/pkg/log"
	"github.com/google/wire"
)

const defaultLocalMaxBytes = 32 * 1024 * 1024

var ProviderSet = wire.NewSet(ProvideICache)

// ProvideICache builds the configured backend. The cleanup closes redis connections.
func ProvideICache(conf Conf) (ICache, func(), error) {
	switch conf.Mode {
	case "redis":
		client, err := NewRedis(context.Background(), conf.Redis)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := client.Close(); err != nil {
				log.Warnw("failed to close redis", "error", err)
			}
		}
		return NewRedisCache(client, conf.Redis.KeyPrefix), cleanup, nil
	default:
		maxBytes := conf.LocalMaxBytes
		if maxBytes <= 0 {
			maxBytes = defaultLocalMaxBytes
		}
		log.Infow("using local cache", "maxBytes", maxBytes)
		return NewFastCache(FastCacheConfig{MaxBytes: maxBytes}), func() {}, nil
	}
}
