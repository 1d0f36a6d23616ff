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

package http

import (
	"fmt"
	"time"
)

// Http server configuration
type Http struct {
	Host            string
	Port            int
	AccessLog       bool
	ExposeMetrics   bool
	BodyLimit       int // bytes
	ReadTimeout     int // seconds
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	AllowOrigins    []string
	TLS             TLS
}

type TLS struct {
	CertFile string
	KeyFile  string
}

// Addr host:port to listen on
func (h Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// ShutdownWait graceful shutdown budget
func (h Http) ShutdownWait() time.Duration {
	if h.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(h.ShutdownTimeout) * time.Second
}

func (h Http) seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// Timeouts read, write and idle timeouts
func (h Http) Timeouts() (read, write, idle time.Duration) {
	return h.seconds(h.ReadTimeout), h.seconds(h.WriteTimeout), h.seconds(h.IdleTimeout)
}

// SetDefaults fills zero values
func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "0.0.0.0"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.BodyLimit == 0 {
		h.BodyLimit = 4 * 1024 * 1024
	}
	if h.ReadTimeout == 0 {
		h.ReadTimeout = 30
	}
	if h.WriteTimeout == 0 {
		h.WriteTimeout = 30
	}
	if h.IdleTimeout == 0 {
		h.IdleTimeout = 60
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = 10
	}
}
