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

package log

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// WithContext returns a logger carrying trace_id and span_id of the span in ctx.
func WithContext(ctx context.Context) *zap.SugaredLogger {
	s := getSugar()
	if ctx == nil {
		return s
	}
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return s
	}
	return s.With(
		"trace_id", spanCtx.TraceID().String(),
		"span_id", spanCtx.SpanID().String(),
	)
}

// With returns a logger with the given key-value pairs attached.
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return getSugar().With(keysAndValues...)
}

// Sync flushes buffered entries.
func Sync() error {
	return getSugar().Sync()
}

func Debug(args ...interface{}) {
	getSugar().Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	getSugar().Debugf(format, args...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	getSugar().Debugw(msg, keysAndValues...)
}

func Info(args ...interface{}) {
	getSugar().Info(args...)
}

func Infof(format string, args ...interface{}) {
	getSugar().Infof(format, args...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	getSugar().Infow(msg, keysAndValues...)
}

func Warn(args ...interface{}) {
	getSugar().Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	getSugar().Warnf(format, args...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	getSugar().Warnw(msg, keysAndValues...)
}

func Error(args ...interface{}) {
	getSugar().Error(args...)
}

func Errorf(format string, args ...interface{}) {
	getSugar().Errorf(format, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	getSugar().Errorw(msg, keysAndValues...)
}

func Fatal(args ...interface{}) {
	getSugar().Fatal(args...)
}

func Fatalf(format string, args ...interface{}) {
	getSugar().Fatalf(format, args...)
}
