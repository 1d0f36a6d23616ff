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
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/portal/internal/portal/config"
	"github.com/go-arcade/portal/pkg/log"
	"github.com/go-arcade/portal/pkg/metrics"
	"github.com/go-arcade/portal/pkg/trace/inject"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/propagation"
)

type tokenKey struct{}

// WithToken stores the session bearer token on ctx
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token stored on ctx
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client talks to the upstream REST API
type Client struct {
	rc      *resty.Client
	metrics *metrics.Portal
}

func New(conf config.UpstreamConfig, m *metrics.Portal) *Client {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rc := resty.New().
		SetBaseURL(conf.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	return &Client{rc: rc, metrics: m}
}

// Do sends one request. out, when non-nil, receives the decoded 2xx body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var resp *resty.Response
	_, _, err := inject.HTTPRequest(ctx, method, path, func(ctx context.Context) (int, int64, error) {
		req := c.rc.R().SetContext(ctx)
		if token := TokenFrom(ctx); token != "" {
			req.SetAuthToken(token)
		}
		if len(query) > 0 {
			req.SetQueryParamsFromValues(query)
		}
		if body != nil {
			req.SetBody(body)
		}
		inject.InjectHeaders(ctx, propagation.HeaderCarrier(req.Header))

		start := time.Now()
		var err error
		resp, err = req.Execute(method, path)
		if err != nil {
			c.metrics.ObserveUpstream(method, 0, time.Since(start))
			return 0, 0, err
		}
		c.metrics.ObserveUpstream(method, resp.StatusCode(), time.Since(start))
		return resp.StatusCode(), resp.Size(), nil
	})
	if err != nil {
		log.WithContext(ctx).Warnw("upstream request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("upstream %s %s: %w", method, path, err)
	}

	if resp.IsError() || resp.StatusCode() >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode(), Path: path, Message: serverMessage(resp.Body())}
		log.WithContext(ctx).Debugw("upstream rejected request", "method", method, "path", path, "status", apiErr.Status, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if len(body) == 0 || sonic.Unmarshal(body, &payload) != nil {
		return ""
	}
	return payload.Message
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}
