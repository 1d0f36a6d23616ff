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
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ResponseErr struct {
	ErrCode int               `json:"code"`
	ErrMsg  any               `json:"errMsg"`
	Path    string            `json:"path"`
	Fields  map[string]string `json:"fields,omitempty"`
	Detail  any               `json:"detail,omitempty"`
	Toast   *Toast            `json:"toast,omitempty"`
}

// Error is returned from handlers and rendered by ErrorHandler
type Error struct {
	Status int
	Code   *Response
	Msg    string
	Fields map[string]string
	Detail any
	Toast  *Toast
	Err    error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an Error whose message defaults to the code message
func NewError(status int, code *Response, msg string) *Error {
	if msg == "" {
		msg = code.Msg
	}
	return &Error{Status: status, Code: code, Msg: msg}
}

// WithToast attaches an error toast carrying msg
func (e *Error) WithToast(msg string) *Error {
	e.Toast = ErrorToast(msg)
	return e
}

// Wrap keeps cause for errors.Is / errors.As
func (e *Error) Wrap(cause error) *Error {
	e.Err = cause
	return e
}

func WithRepErr(c *fiber.Ctx, code int, errMsg string, path string) error {
	return c.JSON(ResponseErr{
		ErrCode: code,
		ErrMsg:  errMsg,
		Path:    path,
	})
}

// WithRepErrMsg 只返回json数据
func WithRepErrMsg(c *fiber.Ctx, code int, errMsg string, path string) error {
	return c.JSON(ResponseErr{
		ErrCode: code,
		ErrMsg:  errMsg,
		Path:    path,
	})
}

// ErrorHandler renders handler errors in the ResponseErr envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	rep := ResponseErr{ErrCode: InternalError.Code, ErrMsg: InternalError.Msg, Path: c.Path()}

	var he *Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &he):
		status = he.Status
		rep.ErrCode = he.Code.Code
		rep.ErrMsg = he.Error()
		rep.Fields = he.Fields
		rep.Detail = he.Detail
		rep.Toast = he.Toast
	case errors.As(err, &fe):
		status = fe.Code
		rep.ErrMsg = fe.Message
		switch fe.Code {
		case fiber.StatusNotFound:
			rep.ErrCode = NotFound.Code
		case fiber.StatusBadRequest:
			rep.ErrCode = BadRequest.Code
		default:
			rep.ErrCode = Failed.Code
		}
	}

	return c.Status(status).JSON(rep)
}
