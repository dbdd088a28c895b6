// Package config loads kts settings from the environment and opens the
// data directory.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/pablasso/kts/internal/journal"
	"github.com/pablasso/kts/internal/kv"
	"github.com/pablasso/kts/internal/sessionlog"
	"github.com/pablasso/kts/internal/storage"
)

const logFileName = "kts.log"

// Config holds the environment settings.
type Config struct {
	DataDir  string     `env:"KTS_DATA_DIR,expand" envDefault:"${HOME}/.kts"`
	Backend  string     `env:"KTS_BACKEND" envDefault:"file"`
	LogLevel slog.Level `env:"KTS_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	switch c.Backend {
	case kv.BackendFile, kv.BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, kv.BackendFile, kv.BackendSQLite)
	}
	if c.DataDir == "" {
		return errors.New("data directory is not set")
	}
	return nil
}

// App bundles everything opened from the data directory.
type App struct {
	Config   Config
	Store    kv.Store
	Storage  *storage.Storage
	Sessions *sessionlog.Log
	Journal  *journal.Journal
	Logger   *slog.Logger

	lock    *kv.DirLock
	logFile io.Closer
}

// Open locks the data directory and opens the configured backend. Close
// must be called to release the lock.
func Open(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dir, err := filepath.Abs(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	lock := kv.NewDirLock(dir)
	if err := lock.Acquire(); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		lock.Release()
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := NewLogger(logFile, cfg.LogLevel)

	store, err := kv.Open(cfg.Backend, dir)
	if err != nil {
		logFile.Close()
		lock.Release()
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}
	logger.Debug("opened data directory", "dir", dir, "backend", cfg.Backend)

	st := storage.New(store, logger)
	cfg.DataDir = dir
	return &App{
		Config:   cfg,
		Store:    store,
		Storage:  st,
		Sessions: sessionlog.New(st.Sessions(), logger),
		Journal:  journal.New(dir),
		Logger:   logger,
		lock:     lock,
		logFile:  logFile,
	}, nil
}

// Close closes the store and log file and releases the directory lock.
func (a *App) Close() error {
	var errs []error
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close store: %w", err))
	}
	if err := a.logFile.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
	}
	if err := a.lock.Release(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NewLogger returns a text logger at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
