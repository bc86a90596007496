// Package logging configures structured logging on log/slog with a tint
// handler. Level comes from the LOG_LEVEL environment variable (debug, info,
// warn, error; default info).
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default slog handler at the level from LOG_LEVEL.
func Setup() {
	SetupWithLevel(levelFromEnv(os.Getenv("LOG_LEVEL")))
}

// SetupWithLevel installs the default slog handler at an explicit level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

func levelFromEnv(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
