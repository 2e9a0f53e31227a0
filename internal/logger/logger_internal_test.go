package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":       slog.LevelInfo,
		"DEBUG":  slog.LevelDebug,
		" warn ": slog.LevelWarn,
		"error":  slog.LevelError,
		"noise":  slog.LevelInfo,
	}
	for raw, want := range cases {
		require.Equal(t, want, parseLevel(raw), raw)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "info", "json").With("service", "api")
	log.Debug("hidden")
	log.Info("search served", slog.Int("hits", 3))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "search served", line["msg"])
	require.Equal(t, "api", line["service"])
	require.EqualValues(t, 3, line["hits"])
}

func TestTextFormatDefault(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, "", "").Info("ready")
	require.Contains(t, buf.String(), "msg=ready")
}
