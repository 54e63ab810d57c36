package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/samdwyer/delve/internal/config"
	"github.com/samdwyer/delve/internal/storage"
)

// loadSettings reads the config file and applies the command-line flags
// on top.
func loadSettings() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagSlot != "" {
		cfg.Save.Slot = flagSlot
	}
	if flagDBPath != "" {
		cfg.Save.DBPath = flagDBPath
	}
	return cfg, nil
}

// newLogger writes to log.file, or to stderr when no file is set. The
// returned func closes the file.
func newLogger(cfg config.Config) (*log.Logger, func() error, error) {
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() error { return nil }
	)
	if cfg.Log.File != "" {
		path, err := config.ExpandPath(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		w, closeFn = f, f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "delve",
		Level:           lvl,
	})
	return logger, closeFn, nil
}

func openStore(cfg config.Config) (*storage.Store, error) {
	path, err := config.ExpandPath(cfg.Save.DBPath)
	if err != nil {
		return nil, err
	}
	return storage.Open(path)
}
