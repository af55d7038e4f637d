// Package logging builds the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
)

// New returns a text logger for dev and a JSON logger otherwise.
func New(env string) *slog.Logger {
	var h slog.Handler
	if env == "dev" {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(h)
}
