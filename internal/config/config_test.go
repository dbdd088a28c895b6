package config

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pablasso/kts/internal/kv"
	"github.com/pablasso/kts/internal/testutil"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/squad")
	t.Setenv("KTS_DATA_DIR", "")
	os.Unsetenv("KTS_DATA_DIR")
	t.Setenv("KTS_BACKEND", "")
	os.Unsetenv("KTS_BACKEND")
	t.Setenv("KTS_LOG_LEVEL", "")
	os.Unsetenv("KTS_LOG_LEVEL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/home/squad/.kts" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Backend != kv.BackendFile {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("KTS_DATA_DIR", "/tmp/kts-data")
	t.Setenv("KTS_BACKEND", "sqlite")
	t.Setenv("KTS_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/kts-data" || cfg.Backend != kv.BackendSQLite || cfg.LogLevel != slog.LevelDebug {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"bad backend", "KTS_BACKEND", "redis", "unknown backend"},
		{"bad level", "KTS_LOG_LEVEL", "loud", "parse env:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KTS_DATA_DIR", t.TempDir())
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	for _, backend := range []string{kv.BackendFile, kv.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			dir := testutil.DataDir(t)
			app, err := Open(Config{DataDir: dir, Backend: backend, LogLevel: slog.LevelDebug})
			if err != nil {
				t.Fatalf("Open: %v", err)
			}

			ctx := context.Background()
			if err := app.Storage.SetSetupComplete(ctx, true); err != nil {
				t.Fatal(err)
			}
			if !app.Storage.IsSetupComplete(ctx) {
				t.Error("setup flag not stored")
			}
			if len(app.Sessions.All(ctx)) != 0 {
				t.Error("fresh log should be empty")
			}

			// A second process (same PID here) cannot open the directory.
			if _, err := Open(app.Config); !errors.Is(err, kv.ErrLocked) {
				t.Errorf("expected ErrLocked, got %v", err)
			}

			if err := app.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
			if _, err := os.Stat(filepath.Join(dir, "kts.lock")); !os.IsNotExist(err) {
				t.Error("lock should be released on close")
			}
			if _, err := os.Stat(filepath.Join(dir, logFileName)); err != nil {
				t.Errorf("expected log file: %v", err)
			}

			reopened, err := Open(Config{DataDir: dir, Backend: backend})
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer reopened.Close()
			if !reopened.Storage.IsSetupComplete(ctx) {
				t.Error("data should survive a reopen")
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)
	logger.Info("hidden")
	logger.Warn("shown", "component", "storage")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=storage") {
		t.Errorf("unexpected output: %s", out)
	}
}
