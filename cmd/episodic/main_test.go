package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setTempHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix home layout")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(viper.Reset)
	return home
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDBCreateCommand(t *testing.T) {
	home := setTempHome(t)

	out, err := runCommand(t, "db", "create")
	if err != nil {
		t.Fatalf("db create: %v", err)
	}
	if !strings.Contains(out, "Created database at") {
		t.Fatalf("unexpected output: %q", out)
	}

	dbPath := filepath.Join(home, ".local", "share", "episodic", "episodic-db-1", "series.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database not created at canonical path: %v", err)
	}

	out, err = runCommand(t, "db", "create")
	if err != nil {
		t.Fatalf("second db create: %v", err)
	}
	if !strings.Contains(out, "Existing database at") {
		t.Fatalf("unexpected output on reopen: %q", out)
	}
}

func TestDBExportAndImportCommands(t *testing.T) {
	setTempHome(t)

	if _, err := runCommand(t, "db", "create"); err != nil {
		t.Fatalf("db create: %v", err)
	}

	destDir := t.TempDir()
	out, err := runCommand(t, "db", "export", destDir)
	if err != nil {
		t.Fatalf("db export: %v", err)
	}
	exported := filepath.Join(destDir, "series.db")
	if _, err := os.Stat(exported); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
	if !strings.Contains(out, "Exported collection to") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = runCommand(t, "db", "import", exported)
	if err != nil {
		t.Fatalf("db import: %v", err)
	}
	if !strings.Contains(out, "Imported collection from") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDBImportRejectsGarbage(t *testing.T) {
	setTempHome(t)

	junk := filepath.Join(t.TempDir(), "junk.db")
	if err := os.WriteFile(junk, []byte("not a database"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := runCommand(t, "db", "import", junk); err == nil {
		t.Fatal("expected import of garbage to fail")
	}
}

func TestWatchUndoRequiresEpisode(t *testing.T) {
	_, err := runCommand(t, "watch", "82", "1", "--undo")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "episode") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseSeriesID(t *testing.T) {
	if _, err := parseSeriesID("abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if _, err := parseSeriesID("-4"); err == nil {
		t.Fatal("expected error for negative id")
	}
	if _, err := parseSeriesID("0"); err == nil {
		t.Fatal("expected error for zero id")
	}
	id, err := parseSeriesID("82")
	if err != nil || id != 82 {
		t.Fatalf("parseSeriesID(82): got %d, %v", id, err)
	}
}
