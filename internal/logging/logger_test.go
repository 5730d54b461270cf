package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(Config{Level: tt.level}, &bytes.Buffer{})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info"}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("stage", "segment").Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"stage":"segment"`)
	assert.Contains(t, out, `"message":"visible"`)
	assert.Contains(t, out, `"time":`)
}

func TestNew_PrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "pretty"}, &buf)

	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{}, &buf)

	ctx := WithContext(context.Background(), logger)
	Ctx(ctx).Info().Msg("from context")
	assert.Contains(t, buf.String(), "from context")

	assert.NotNil(t, Ctx(context.Background()))
}
