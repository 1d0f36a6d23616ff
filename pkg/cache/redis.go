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
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/go-arcade/portal/pkg/log"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	Mode             string // single | sentinel
	Address          string
	Password         string
	DB               int
	PoolSize         int
	UseTLS           bool
	MasterName       string
	SentinelUsername string
	SentinelPassword string
	DialTimeout      int // seconds
	ReadTimeout      int // seconds
	WriteTimeout     int // seconds
	KeyPrefix        string
}

func NewRedis(ctx context.Context, cfg Redis) (*redis.Client, error) {
	var redisClient *redis.Client
	switch cfg.Mode {
	case "", "single":
		redisOptions := &redis.Options{
			Addr:         cfg.Address,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			DialTimeout:  seconds(cfg.DialTimeout),
			ReadTimeout:  seconds(cfg.ReadTimeout),
			WriteTimeout: seconds(cfg.WriteTimeout),
		}
		if cfg.UseTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewClient(redisOptions)
	case "sentinel":
		redisOptions := &redis.FailoverOptions{
			MasterName:       cfg.MasterName,
			SentinelAddrs:    strings.Split(cfg.Address, ","),
			Password:         cfg.Password,
			DB:               cfg.DB,
			PoolSize:         cfg.PoolSize,
			SentinelUsername: cfg.SentinelUsername,
			SentinelPassword: cfg.SentinelPassword,
			DialTimeout:      seconds(cfg.DialTimeout),
			ReadTimeout:      seconds(cfg.ReadTimeout),
			WriteTimeout:     seconds(cfg.WriteTimeout),
		}
		if cfg.UseTLS {
			redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		redisClient = redis.NewFailoverClient(redisOptions)
	default:
		return nil, fmt.Errorf("unsupported redis mode: %q", cfg.Mode)
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Errorw("failed to connect redis", "address", cfg.Address, "error", err)
		_ = redisClient.Close()
		return nil, err
	}

	log.Infow("redis connected", "mode", cfg.Mode, "address", cfg.Address)
	return redisClient, nil
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
