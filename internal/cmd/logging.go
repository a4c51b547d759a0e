package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iconclip/iconclip/internal/config"
)

// setupLogging routes slog to a file. The TUI owns the terminal, so
// nothing may log to stdout or stderr while it runs.
func setupLogging(cfg *config.Config) error {
	path := cfg.Log.File
	if path == "" {
		path = config.DefaultPaths().LogFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return nil
}
