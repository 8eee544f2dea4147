package logger

import (
	"log/slog"
	"os"
)

// New returns the application's structured logger. JSON output keeps log
// aggregation trivial; the level is env-controlled.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
