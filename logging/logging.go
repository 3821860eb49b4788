// Package logging builds the zerolog loggers of the propchain command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LevelEnvVar is read by LevelFromEnv.
const LevelEnvVar = "LOG_LEVEL"

// ParseLevel parses a level name, an empty name gives the info level.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %s:\n\t%w", name, err)
	}
	return level, nil
}

// LevelFromEnv parses the level found in LOG_LEVEL.
func LevelFromEnv() (zerolog.Level, error) {
	return ParseLevel(os.Getenv(LevelEnvVar))
}

// New creates a human readable logger writing to w, os.Stderr when w is nil.
func New(level zerolog.Level, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
