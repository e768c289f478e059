// =============================================================================
// TigerTamer - Logging
// =============================================================================
//
// Structured logging setup for the whole tool, built on zap. The CLI builds
// one logger from the config (level, format, optional file output) and hands
// it to the packages that emit diagnostics. The cutlist engine defaults to a
// no-op logger so library use stays silent.
//
// =============================================================================

package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Config holds logging configuration, loaded from the main config file and
// overridable from CLI flags.
type Config struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is "console" or "json". Console is the default for a CLI tool.
	Format string `yaml:"format"`

	// OutputPath is an optional log file path. Empty logs to stderr.
	OutputPath string `yaml:"output_path"`
}

// New builds a zap logger from the config.
func New(cfg Config) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.DisableStacktrace = true

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapCfg.Level = level

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.Level = level
	}

	if cfg.OutputPath != "" {
		zapCfg.OutputPaths = []string{cfg.OutputPath}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// NewDefault returns a console logger at the given verbosity, falling back
// to a no-op logger if the build somehow fails.
func NewDefault(verbose bool) *zap.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logger, err := New(Config{Level: level, Format: "console"})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
