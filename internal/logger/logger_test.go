package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "debug", "json")

	log.Debug().Str("order_id", "abc").Msg("order placed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "order placed", entry["message"])
	assert.Equal(t, "abc", entry["order_id"])
	assert.Equal(t, "travel-booking", entry["service"])
}

func TestNew_LevelFallback(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "loud", "json")

	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(&buf, "warn", "console")

	log.Warn().Msg("cache unavailable")
	assert.Contains(t, buf.String(), "cache unavailable")
	assert.NotContains(t, buf.String(), "{")
}
