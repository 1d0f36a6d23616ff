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
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return rec
}

func TestHTTPRequest_RecordsClientSpan(t *testing.T) {
	rec := installRecorder(t)

	status, size, err := HTTPRequest(context.Background(), http.MethodGet, "http://upstream/api/portal/menu",
		func(ctx context.Context) (int, int64, error) {
			assert.True(t, oteltrace.SpanContextFromContext(ctx).IsValid())
			return 200, 42, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, int64(42), size)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "http.request", spans[0].Name())
	assert.Equal(t, oteltrace.SpanKindClient, spans[0].SpanKind())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestHTTPRequest_ErrorStatus(t *testing.T) {
	rec := installRecorder(t)

	_, _, err := HTTPRequest(context.Background(), http.MethodGet, "http://upstream",
		func(ctx context.Context) (int, int64, error) {
			return 0, 0, errors.New("dial failed")
		})
	assert.Error(t, err)
	require.Len(t, rec.Ended(), 1)
	assert.Equal(t, codes.Error, rec.Ended()[0].Status().Code)
}

func TestHTTPServerRequest_ExtractsParent(t *testing.T) {
	rec := installRecorder(t)

	parentCtx, parent := otel.Tracer("test").Start(context.Background(), "parent")
	carrier := propagation.MapCarrier{}
	InjectHeaders(parentCtx, carrier)
	parent.End()

	_, err := HTTPServerRequest(context.Background(), http.MethodGet, "/sidebar", carrier,
		func(ctx context.Context) (int, error) { return 404, nil })
	require.NoError(t, err)

	var server sdktrace.ReadOnlySpan
	for _, s := range rec.Ended() {
		if s.Name() == "http.server.request" {
			server = s
		}
	}
	require.NotNil(t, server)
	assert.Equal(t, parent.SpanContext().TraceID(), server.SpanContext().TraceID())
	assert.Equal(t, codes.Error, server.Status().Code)
}
