package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Run("it should default to info", func(t *testing.T) {
		// WHEN
		level, err := ParseLevel("")

		// THEN
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, level)
	})

	t.Run("it should ignore the case", func(t *testing.T) {
		// WHEN
		level, err := ParseLevel("DEBUG")

		// THEN
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, level)
	})

	t.Run("it should reject unknown levels", func(t *testing.T) {
		// WHEN
		_, err := ParseLevel("verbose")

		// THEN
		assert.ErrorContains(t, err, "invalid log level verbose")
	})
}

func TestLevelFromEnv(t *testing.T) {
	t.Run("it should read the level from the environment", func(t *testing.T) {
		// GIVEN
		t.Setenv(LevelEnvVar, "warn")

		// WHEN
		level, err := LevelFromEnv()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, zerolog.WarnLevel, level)
	})
}

func TestNew(t *testing.T) {
	t.Run("it should write messages above the level", func(t *testing.T) {
		// GIVEN
		var buf bytes.Buffer
		logger := New(zerolog.WarnLevel, &buf)

		// WHEN
		logger.Info().Msg("hidden")
		logger.Warn().Str("source", "file").Msg("duplicate property source name")

		// THEN
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "duplicate property source name")
		assert.Contains(t, buf.String(), "source=file")
	})
}
