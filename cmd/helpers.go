package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/navmark/internal/config"
	"github.com/ziadkadry99/navmark/internal/db"
	"github.com/ziadkadry99/navmark/internal/logging"
)

// loadConfig loads and validates the config named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger; --verbose forces debug.
func newLogger(cfg *config.Config) *logrus.Logger {
	level := string(cfg.LogLevel)
	if verbose {
		level = string(config.LogDebug)
	}
	return logging.New(level, os.Stderr)
}

// openDatabase opens the selection database, creating the data dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath()), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}
