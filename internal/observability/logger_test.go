package observability

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")

	logger.Info().Msg("hidden")
	logger.Warn().Str("source", "fallback").Msg("geolocation failed")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "geolocation failed")
	assert.Contains(t, buf.String(), "source=fallback")
}

func TestNewLogger_UnknownLevelIsInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, newLogger(&bytes.Buffer{}, "loud").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, newLogger(&bytes.Buffer{}, "").GetLevel())
	assert.Equal(t, zerolog.DebugLevel, newLogger(&bytes.Buffer{}, "debug").GetLevel())
}
