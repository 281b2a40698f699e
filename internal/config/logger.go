package config

import (
	"io"
	"log/slog"
	"os"
)

// SetupLogger builds the process logger: JSON in production, text otherwise.
// It also becomes the slog default.
func SetupLogger(cfg *Config) *slog.Logger {
	return setupLogger(cfg, os.Stdout)
}

func setupLogger(cfg *Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler).With(slog.String("service", "socialhub"))
	slog.SetDefault(logger)
	return logger
}
