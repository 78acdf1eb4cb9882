package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "info", Format: FormatJSON}, &buf)

	l.Debug().Msg("hidden")
	component := ComponentLogger(l, "habitat")
	component.Info().Int("emitted", 6).Msg("enumeration complete")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "enumeration complete", entry["message"])
	assert.Equal(t, "habitat", entry["component"])
	assert.Equal(t, 6.0, entry["emitted"])
	assert.Contains(t, entry, "time")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "debug", Format: FormatConsole}, &buf)
	l.Debug().Str("table", "carbon").Msg("loaded")

	assert.Contains(t, buf.String(), "loaded")
	assert.Contains(t, buf.String(), "carbon")
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "offsetcalc.log")
	res := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
	require.True(t, res.UsingFile)
	assert.False(t, res.FallbackUsed)
	assert.Equal(t, path, res.FilePath)

	res.Logger.Info().Msg("to file")
	require.NoError(t, res.Close())
	require.NoError(t, res.Close(), "closing twice is safe")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}

func TestNewLoggerWithPath_Fallback(t *testing.T) {
	res := NewLoggerWithPath(Config{Output: OutputFile})
	assert.False(t, res.UsingFile)
	assert.True(t, res.FallbackUsed)
	assert.Contains(t, res.FallbackReason, "no log file configured")
	assert.NoError(t, res.Close())

	var buf bytes.Buffer
	PrintFallbackWarning(&buf, res.FallbackReason)
	assert.Contains(t, buf.String(), "logging to stderr")

	buf.Reset()
	PrintLogPathMessage(&buf, "/tmp/x.log")
	assert.Equal(t, "Logging to /tmp/x.log\n", buf.String())
}

func TestRunID(t *testing.T) {
	id := NewRunID()
	_, err := ulid.Parse(id)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Empty(t, RunIDFromContext(ctx))
	assert.NotEqual(t, id, GetOrGenerateRunID(ctx))

	ctx = ContextWithRunID(ctx, id)
	assert.Equal(t, id, RunIDFromContext(ctx))
	assert.Equal(t, id, GetOrGenerateRunID(ctx))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, zerolog.Disabled, FromContext(context.Background()).GetLevel())

	var buf bytes.Buffer
	l := NewLogger(Config{Format: FormatJSON}, &buf)
	ctx := ContextWithRunID(context.Background(), "01TESTRUN")
	ctx = WithLogger(ctx, l)

	log := FromContext(ctx)
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), `"run_id":"01TESTRUN"`)
}
