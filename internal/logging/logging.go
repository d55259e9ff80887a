package logging

import (
	"log/slog"
	"os"
)

// Init installs the process-wide structured logger. JSON output keeps the
// logs machine-parseable in production; callers use slog.Default afterwards.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("LOG_DEBUG") == "true" {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
