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

package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var defaultSampler = sdktrace.AlwaysSample()

// Conf trace configuration
type Conf struct {
	Enabled            bool              `mapstructure:"enabled"`
	Endpoint           string            `mapstructure:"endpoint"`
	Protocol           string            `mapstructure:"protocol"` // grpc or http
	ServiceName        string            `mapstructure:"serviceName"`
	ServiceVersion     string            `mapstructure:"serviceVersion"`
	Insecure           bool              `mapstructure:"insecure"`
	Headers            map[string]string `mapstructure:"headers"`
	BatchTimeout       int               `mapstructure:"batchTimeout"`  // seconds
	ExportTimeout      int               `mapstructure:"exportTimeout"` // seconds
	MaxExportBatchSize int               `mapstructure:"maxExportBatchSize"`
}

// SetDefaults fills zero values
func (c *Conf) SetDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "portal"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "dev"
	}
	if c.Protocol == "" {
		c.Protocol = "grpc"
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = 5
	}
	if c.ExportTimeout == 0 {
		c.ExportTimeout = 30
	}
	if c.MaxExportBatchSize == 0 {
		c.MaxExportBatchSize = 512
	}
	if c.Endpoint == "" {
		if c.Protocol == "grpc" {
			c.Endpoint = "localhost:4317"
		} else {
			c.Endpoint = "localhost:4318"
		}
	}
}

// InitTracerProvider installs the global TracerProvider.
// When tracing is disabled spans are still created so log lines carry
// trace ids, but nothing is exported.
func InitTracerProvider(ctx context.Context, conf Conf) (*sdktrace.TracerProvider, func(), error) {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	if !conf.Enabled {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(defaultSampler))
		otel.SetTracerProvider(tp)
		return tp, func() { _ = tp.Shutdown(context.Background()) }, nil
	}

	conf.SetDefaults()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", conf.ServiceName),
			attribute.String("service.version", conf.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := createExporter(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(time.Duration(conf.BatchTimeout)*time.Second),
			sdktrace.WithExportTimeout(time.Duration(conf.ExportTimeout)*time.Second),
			sdktrace.WithMaxExportBatchSize(conf.MaxExportBatchSize),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(defaultSampler),
	)
	otel.SetTracerProvider(tp)

	cleanup := func() {
		shutdownTimeout := min(max(time.Duration(conf.ExportTimeout)*time.Second+5*time.Second, 10*time.Second), 30*time.Second)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			// the logger may already be closed here
			if errors.Is(err, context.DeadlineExceeded) {
				fmt.Printf("TracerProvider shutdown timeout after %v\n", shutdownTimeout)
			} else {
				fmt.Printf("failed to shutdown TracerProvider: %v\n", err)
			}
		}
	}

	return tp, cleanup, nil
}

func createExporter(ctx context.Context, conf Conf) (sdktrace.SpanExporter, error) {
	switch conf.Protocol {
	case "grpc":
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(conf.Endpoint)}
		if conf.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		if len(conf.Headers) > 0 {
			opts = append(opts, otlptracegrpc.WithHeaders(conf.Headers))
		}
		opts = append(opts, otlptracegrpc.WithTimeout(time.Duration(conf.ExportTimeout)*time.Second))
		return otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	case "http":
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(conf.Endpoint)}
		if conf.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if len(conf.Headers) > 0 {
			opts = append(opts, otlptracehttp.WithHeaders(conf.Headers))
		}
		opts = append(opts, otlptracehttp.WithTimeout(time.Duration(conf.ExportTimeout)*time.Second))
		return otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", conf.Protocol)
	}
}
