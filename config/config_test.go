package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	TestSettings struct {
		Log   *LogSettings  `mapstructure:"log"`
		Files []string      `mapstructure:"files"`
		NoEnv bool          `mapstructure:"no_env"`
		Wait  time.Duration `mapstructure:"wait"`
	}
	LogSettings struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	}
	MultipleWordsSettings struct {
		MaxIdle    int
		CustomerId int
	}
)

func (s *LogSettings) ApplyDefault() {
	if s.Level == "" {
		s.Level = "info"
	}
}

func TestLoad(t *testing.T) {
	t.Run("it should load settings from env vars", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_LOG_LEVEL", "debug")
		t.Setenv("TEST_LOG_PRETTY", "true")
		t.Setenv("TEST_FILES", "a.properties,b.yaml")
		t.Setenv("TEST_NO_ENV", "true")
		t.Setenv("TEST_WAIT", "2s")

		// WHEN
		settings, err := Load[TestSettings](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "debug", settings.Log.Level)
		assert.True(t, settings.Log.Pretty)
		assert.Equal(t, []string{"a.properties", "b.yaml"}, settings.Files)
		assert.True(t, settings.NoEnv)
		assert.Equal(t, 2*time.Second, settings.Wait)
	})

	t.Run("it should initialize nested structs and apply defaults", func(t *testing.T) {
		// WHEN
		settings, err := Load[TestSettings](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		require.NotNil(t, settings.Log)
		assert.Equal(t, "info", settings.Log.Level)
		assert.Empty(t, settings.Files)
		assert.False(t, settings.NoEnv)
	})

	t.Run("it should bind multiple words fields", func(t *testing.T) {
		// GIVEN
		t.Setenv("TEST_MAX_IDLE", "12")
		t.Setenv("TEST_CUSTOMER_ID", "66")

		// WHEN
		settings, err := Load[MultipleWordsSettings](WithEnvPrefix("TEST"))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, 12, settings.MaxIdle)
		assert.Equal(t, 66, settings.CustomerId)
	})

	t.Run("it should read a config file overridden by env vars", func(t *testing.T) {
		// GIVEN
		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n  pretty: true\nfiles: [user.yaml]\n"), 0o600))
		t.Setenv("TEST_LOG_LEVEL", "trace")

		// WHEN
		settings, err := Load[TestSettings](WithEnvPrefix("TEST"), WithConfigFile(path))

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "trace", settings.Log.Level)
		assert.True(t, settings.Log.Pretty)
		assert.Equal(t, []string{"user.yaml"}, settings.Files)
	})

	t.Run("it should fail on unreadable config files", func(t *testing.T) {
		// WHEN
		_, err := Load[TestSettings](WithConfigFile("missing.yaml"))

		// THEN
		assert.ErrorContains(t, err, "unable to read config file missing.yaml")
	})
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "PROPCHAIN_LOG_LEVEL", envName("propchain", []string{"log", "level"}))
	assert.Equal(t, "MAX_IDLE", envName("", []string{"MaxIdle"}))
}
