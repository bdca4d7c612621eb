package log

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"episodic/internal/config"
)

func TestSetupLoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "episodic.log")
	cfg := config.LoggingConfig{File: path, Level: "DEBUG"}

	logger, err := SetupLogger(&cfg)
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	logger.Info("hello", "answer", 42)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, `"msg":"hello"`) || !strings.Contains(line, `"answer":42`) {
		t.Fatalf("unexpected log line: %q", line)
	}
}

func TestSetupLoggerExpandsHomeInPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("expansion uses HOME")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := config.LoggingConfig{File: "~/logs/episodic.log", Level: "INFO"}
	logger, err := SetupLogger(&cfg)
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	logger.Info("at home")

	if _, err := os.Stat(filepath.Join(home, "logs", "episodic.log")); err != nil {
		t.Fatalf("log file not under expanded home: %v", err)
	}
}

func TestSetupLoggerDisabledWithoutFile(t *testing.T) {
	logger, err := SetupLogger(&config.LoggingConfig{Level: "DEBUG"})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	if logger == nil {
		t.Fatal("expected a discard logger, got nil")
	}
	logger.Info("dropped")
}

func TestNullLoggerDiscards(t *testing.T) {
	logger := NullLogger()
	if logger == nil {
		t.Fatal("NullLogger returned nil")
	}
	logger.Error("dropped")
}
