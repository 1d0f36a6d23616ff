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
)

// Conn 表示一个 WebSocket 连接
type Conn interface {
	// ID 返回连接的唯一标识符
	ID() string

	// Param 返回升级请求的路由参数
	Param(key string) string

	// Locals 返回升级请求上设置的 Locals 值
	Locals(key string) any

	ReadMessage() (messageType int, p []byte, err error)
	WriteJSON(v any) error
	Close() error

	// Context 连接的上下文, 连接关闭时取消
	Context() context.Context
}

// Handler 处理 WebSocket 连接的生命周期事件
type Handler interface {
	// OnConnect 当连接建立时调用, 返回错误将关闭连接
	OnConnect(conn Conn) error

	// OnMessage 当收到消息时调用
	OnMessage(conn Conn, messageType int, data []byte) error

	// OnDisconnect 当连接断开时调用
	OnDisconnect(conn Conn, err error)
}

// MessageType WebSocket 消息类型常量
const (
	TextMessage  = 1
	CloseMessage = 8
	PingMessage  = 9
)
