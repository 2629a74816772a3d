// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/uteqlabs/authcore/internal/logging"
)

func TestSetup_AddsServiceIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup(logging.Options{
		Service: "authcore",
		Version: "1.2.3",
		Writer:  &buf,
	})

	logger.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "authcore", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestSetup_AddsTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup(logging.Options{
		Service: "authcore",
		Version: "test",
		Writer:  &buf,
	})

	traceID := trace.TraceID{0x01}
	spanID := trace.SpanID{0x02}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	logger.InfoContext(ctx, "traced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, traceID.String(), entry["trace_id"])
	assert.Equal(t, spanID.String(), entry["span_id"])
}

func TestSetup_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup(logging.Options{
		Service: "authcore",
		Version: "test",
		Level:   slog.LevelWarn,
		Writer:  &buf,
	})

	logger.Info("suppressed")
	assert.Empty(t, buf.Bytes())

	logger.Warn("emitted")
	assert.NotEmpty(t, buf.Bytes())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, logging.ParseLevel(tt.in), "input %q", tt.in)
	}
}
