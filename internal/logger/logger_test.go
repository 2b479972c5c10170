package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestNew_FiltersBelowLevelAndTagsService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf, Service: "pet-api"})

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Str("k", "v").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "pet-api", entry["service"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "warn", entry["level"])
}
