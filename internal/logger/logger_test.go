package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestNewWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept", "questions", 12)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, 12, entry["questions"])
}

func TestNewWarnsOnUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "chatty")
	assert.Contains(t, buf.String(), "invalid log level configured")
	assert.Contains(t, buf.String(), "chatty")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info").With("request_id", "abc")

	ctx := WithContext(context.Background(), l)
	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), `"request_id":"abc"`)

	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
