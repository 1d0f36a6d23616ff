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

package ws

import (
	"context"
	"sync"
	"time"

	"github.com/go-arcade/portal/pkg/safe"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// conn WebSocket 连接实现
type conn struct {
	ws        *websocket.Conn
	id        string
	ctx       context.Context
	cancel    context.CancelFunc
	writeMu   sync.Mutex
	closeOnce sync.Once
}

const (
	readLimit  = 64 * 1024
	pongWait   = 60 * time.Second    // 等待 pong 响应的超时时间
	pingPeriod = (pongWait * 9) / 10 // ping 发送周期，应该小于 pongWait
	writeWait  = 10 * time.Second    // 写入超时时间
)

func newConn(wsConn *websocket.Conn) *conn {
	ctx, cancel := context.WithCancel(context.Background())
	return &conn{
		ws:     wsConn,
		id:     uuid.NewString(),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (c *conn) ID() string { return c.id }

func (c *conn) Param(key string) string { return c.ws.Params(key) }

func (c *conn) Locals(key string) any { return c.ws.Locals(key) }

func (c *conn) ReadMessage() (int, []byte, error) { return c.ws.ReadMessage() }

// WriteJSON 写入 JSON 消息, 并发安全
func (c *conn) WriteJSON(v any) error {
	if c.ctx.Err() != nil {
		return ErrConnectionClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.ws.Close()
	})
	return err
}

func (c *conn) Context() context.Context { return c.ctx }

// Upgrade rejects plain HTTP requests on a websocket route
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.NewError(fiber.StatusUpgradeRequired, ErrUpgradeRequired.Error())
}

// Handle 处理 WebSocket 连接
func Handle(handler Handler) fiber.Handler {
	return websocket.New(func(wsConn *websocket.Conn) {
		conn := newConn(wsConn)

		// 设置读取限制和超时
		wsConn.SetReadLimit(readLimit)
		_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
		wsConn.SetPongHandler(func(string) error {
			return wsConn.SetReadDeadline(time.Now().Add(pongWait))
		})

		if err := handler.OnConnect(conn); err != nil {
			handler.OnDisconnect(conn, err)
			_ = conn.Close()
			return
		}

		safe.Go(conn.pingTicker)

		var readErr error
		for {
			messageType, message, err := conn.ReadMessage()
			if err != nil {
				readErr = err
				break
			}
			_ = wsConn.SetReadDeadline(time.Now().Add(pongWait))
			if err := handler.OnMessage(conn, messageType, message); err != nil {
				readErr = err
				break
			}
		}
		handler.OnDisconnect(conn, readErr)
		_ = conn.Close()
	})
}

// pingTicker 定期发送 ping 消息以保持连接活跃
func (c *conn) pingTicker() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.ws.WriteMessage(PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}
