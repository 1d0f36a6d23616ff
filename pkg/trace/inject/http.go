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

package inject

import (
	"context"
	"time"

	"github.com/go-arcade/portal/pkg/trace"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// HTTPRequest wraps an outgoing request in a client span.
// fn receives the span context and returns status code and response size.
func HTTPRequest(ctx context.Context, method, url string, fn func(ctx context.Context) (statusCode int, responseSize int64, err error)) (int, int64, error) {
	ctx, span := trace.StartSpan(ctx, "http.request", oteltrace.WithSpanKind(oteltrace.SpanKindClient))
	defer span.End()

	startTime := time.Now()
	trace.AddSpanAttributes(span,
		attribute.String("http.method", method),
		attribute.String("http.url", url),
	)

	statusCode, responseSize, err := fn(ctx)

	trace.AddSpanAttributes(span,
		attribute.Int("http.status_code", statusCode),
		attribute.Int64("http.response.size", responseSize),
		attribute.Int64("http.duration_ms", time.Since(startTime).Milliseconds()),
	)
	markStatus(span, statusCode, err)
	return statusCode, responseSize, err
}

// HTTPServerRequest wraps an incoming request in a server span.
// Upstream trace headers are extracted from header when present.
func HTTPServerRequest(ctx context.Context, method, route string, header propagation.TextMapCarrier, fn func(ctx context.Context) (statusCode int, err error)) (int, error) {
	if header != nil {
		ctx = otel.GetTextMapPropagator().Extract(ctx, header)
	}
	ctx, span := trace.StartSpan(ctx, "http.server.request", oteltrace.WithSpanKind(oteltrace.SpanKindServer))
	defer span.End()

	startTime := time.Now()
	trace.AddSpanAttributes(span,
		attribute.String("http.method", method),
		attribute.String("http.route", route),
	)

	statusCode, err := fn(ctx)

	trace.AddSpanAttributes(span,
		attribute.Int("http.status_code", statusCode),
		attribute.Int64("http.duration_ms", time.Since(startTime).Milliseconds()),
	)
	markStatus(span, statusCode, err)
	return statusCode, err
}

// InjectHeaders writes the trace context of ctx into header
func InjectHeaders(ctx context.Context, header propagation.TextMapCarrier) {
	otel.GetTextMapPropagator().Inject(ctx, header)
}

func markStatus(span oteltrace.Span, statusCode int, err error) {
	switch {
	case err != nil:
		trace.RecordError(span, err)
	case statusCode >= 400:
		trace.SetSpanStatus(span, codes.Error, "")
	default:
		trace.SetSpanStatus(span, codes.Ok, "")
	}
}
