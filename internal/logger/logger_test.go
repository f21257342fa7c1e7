package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", false)

	log.Info().Msg("hidden")
	log.Warn().Str("zone", "America/New_York").Msg("shown")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "warn", rec["level"])
	assert.Equal(t, "shown", rec["message"])
	assert.Equal(t, "America/New_York", rec["zone"])
	assert.Contains(t, rec, "time")
}

func TestNew_UnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty", false)

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", true)

	log.Error().Msg("timezone database unavailable")

	assert.Contains(t, buf.String(), "timezone database unavailable")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "pretty output should not be JSON")
}
