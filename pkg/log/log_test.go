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
	"os"
	"path/filepath"
	"sync"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConf(t *testing.T) {
	conf := SetDefaults()

	if conf.Output != "stdout" {
		t.Errorf("expected output to be stdout, got %s", conf.Output)
	}
	if conf.Level != "INFO" {
		t.Errorf("expected level to be INFO, got %s", conf.Level)
	}
	if conf.Filename != "portal.log" {
		t.Errorf("expected filename portal.log, got %s", conf.Filename)
	}
}

func TestConf_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conf    *Conf
		wantErr bool
	}{
		{name: "stdout", conf: &Conf{Output: "stdout", Level: "INFO"}},
		{name: "file", conf: &Conf{Output: "file", Path: "/tmp/logs", Filename: "a.log", RotateSize: 1, RotateNum: 1, KeepHours: 1}},
		{name: "file without path", conf: &Conf{Output: "file"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConf_ValidateFillsRotation(t *testing.T) {
	conf := &Conf{Output: "file", Path: "/tmp/logs"}
	if err := conf.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if conf.RotateSize != 100 || conf.RotateNum != 10 || conf.KeepHours != 7 || conf.Filename == "" {
		t.Errorf("rotation defaults not applied: %+v", conf)
	}
}

func TestNewLog_File(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &Conf{
		Output:     "file",
		Path:       tmpDir,
		Filename:   "test.log",
		Level:      "INFO",
		KeepHours:  1,
		RotateSize: 1,
		RotateNum:  3,
	}

	logger, err := NewLog(conf)
	if err != nil {
		t.Fatalf("NewLog() error = %v", err)
	}
	logger.Info("test message 1")
	_ = logger.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "test.log")); os.IsNotExist(err) {
		t.Errorf("log file should exist")
	}
}

func TestGlobalLogFunctions_LazyInit(t *testing.T) {
	mu.Lock()
	sugar = nil
	logger = nil
	mu.Unlock()
	once = sync.Once{}

	Info("test info message")
	Debugw("test debug", "key", "value")
	Warnf("test %s", "warn")

	mu.RLock()
	initialized := sugar != nil
	mu.RUnlock()
	if !initialized {
		t.Error("global logger should be initialized lazily")
	}
}

func TestGetLevel(t *testing.T) {
	if err := Init(&Conf{Output: "stdout", Level: "warn"}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if GetLevel() != zapcore.WarnLevel {
		t.Errorf("expected warn level, got %v", GetLevel())
	}
	MustInit(SetDefaults())
}

func TestWithContext(t *testing.T) {
	MustInit(SetDefaults())

	if WithContext(context.Background()) == nil {
		t.Fatal("expected logger without span")
	}

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	if WithContext(ctx) == nil {
		t.Fatal("expected logger with span")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"ERROR":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
