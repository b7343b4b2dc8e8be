package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "prod", "info")

	log.Debug("hidden")
	log.Info("visitor verified", "visitor_id", "v-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visitor verified", line["msg"])
	assert.Equal(t, "v-1", line["visitor_id"])
	assert.Equal(t, "estategate", line["service"])
}

func TestNew_DevWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "dev", "debug")

	log.Debug("starting")

	assert.Contains(t, buf.String(), "msg=starting")
}
