package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"episodic/internal/config"
)

// SetupLogger opens the configured log file and returns a JSON logger
// appending to it. Logs never go to the terminal. A config without a
// log file disables output entirely.
func SetupLogger(cfg *config.LoggingConfig) (*slog.Logger, error) {
	path, err := cfg.Path()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return NullLogger(), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	out, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	return slog.New(slog.NewJSONHandler(out, opts)), nil
}

// NullLogger returns a logger that drops every record.
func NullLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

// discardHandler mirrors slog.DiscardHandler, which requires Go 1.24;
// this module builds with Go 1.21.
type discardHandler struct{}

func (dh discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (dh discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (dh discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return dh }
func (dh discardHandler) WithGroup(string) slog.Handler             { return dh }
