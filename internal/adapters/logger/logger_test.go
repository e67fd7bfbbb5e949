package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput(LevelWarn, &buf)
	ctx := context.Background()

	log.Debug(ctx, "hidden debug")
	log.Info(ctx, "hidden info")
	log.Warn(ctx, "visible warn", map[string]interface{}{"symbol": "BTCUSDT"})
	log.Error(ctx, errors.New("boom"), "visible error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible warn")
	assert.Contains(t, out, "symbol=BTCUSDT")
	assert.Contains(t, out, "error=boom")
	assert.Equal(t, LevelWarn, log.Level())
}

func TestLogger_NilFieldsAreIgnored(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput(LevelDebug, &buf)
	log.Info(context.Background(), "no fields", nil)
	assert.Contains(t, buf.String(), "no fields")
}
