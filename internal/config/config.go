// =============================================================================
// TigerTamer - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. The
// config covers the working directories, the discovery ignore lists, the
// conversion flags that would otherwise be passed on every run, and the
// machine settings block written into each .tiger file.
//
// Everything has a working default, so the tool runs without a config file
// at all.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mozaik-tools/tigertamer/internal/logging"
	"github.com/mozaik-tools/tigertamer/internal/tigerfmt"
)

// DefaultFileName is the config file looked for in the working directory
// when no --config flag is given.
const DefaultFileName = "tigertamer.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// DatDir is the directory scanned for Mozaik .dat files.
	// Default: "." (current directory)
	DatDir string `yaml:"dat_dir"`

	// TigerDir is the directory where generated .tiger files are written.
	// Default: same as DatDir.
	TigerDir string `yaml:"tiger_dir"`

	// ArchiveDir is the directory where processed .dat files are moved.
	// Files are only moved after every output file was written.
	// Default: "" (archiving disabled)
	ArchiveDir string `yaml:"archive_dir"`

	// ReportDir is the directory where XLSX run reports are written.
	// Default: same as TigerDir.
	ReportDir string `yaml:"report_dir"`

	// =========================================================================
	// DISCOVERY SETTINGS
	// =========================================================================

	// IgnoreDirs lists directory paths skipped while scanning for .dat
	// files. The archive directory is always skipped.
	IgnoreDirs []string `yaml:"ignore_dirs"`

	// IgnoreStrs lists substrings; a .dat file whose path contains any of
	// them is skipped.
	IgnoreStrs []string `yaml:"ignore_strs"`

	// =========================================================================
	// CONVERSION SETTINGS
	// =========================================================================

	// ExtraData adds the part note as a fourth label column in the output.
	ExtraData bool `yaml:"extra_data"`

	// NoPartSplit disables splitting multi-cabinet locations into one part
	// per cabinet. Quantities are still corrected.
	NoPartSplit bool `yaml:"no_part_split"`

	// ArchiveFiles enables moving source files to ArchiveDir after a
	// successful run.
	ArchiveFiles bool `yaml:"archive_files"`

	// MaxConcurrency is the maximum number of .dat files converted at the
	// same time. Set to 1 for sequential processing.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// =========================================================================
	// MACHINE SETTINGS
	// =========================================================================

	// Tiger is the machine settings block written into every .tiger file.
	Tiger tigerfmt.Settings `yaml:"tiger"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// Logging controls log level, format and destination.
	Logging logging.Config `yaml:"logging"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load loads the configuration from a YAML file.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads the configuration from configPath. When configPath is
// empty, the default file is tried and a missing file yields the built-in
// defaults instead of an error.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath != "" {
		return Load(configPath)
	}

	config, err := Load(DefaultFileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return config, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.DatDir == "" {
		config.DatDir = "."
	}
	if config.TigerDir == "" {
		config.TigerDir = config.DatDir
	}
	if config.ReportDir == "" {
		config.ReportDir = config.TigerDir
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "console"
	}

	defaults := tigerfmt.DefaultSettings()
	if config.Tiger.Style == "" {
		config.Tiger.Style = defaults.Style
	}
	if config.Tiger.Unit == "" {
		config.Tiger.Unit = defaults.Unit
	}
	if config.Tiger.IsOptimized == "" {
		config.Tiger.IsOptimized = defaults.IsOptimized
	}
	if config.Tiger.HeadCut == "" {
		config.Tiger.HeadCut = defaults.HeadCut
	}
	if config.Tiger.TailCut == "" {
		config.Tiger.TailCut = defaults.TailCut
	}
	if config.Tiger.PatternStockLength == "" {
		config.Tiger.PatternStockLength = defaults.PatternStockLength
	}
	if config.Tiger.SequenceNumber == "" {
		config.Tiger.SequenceNumber = defaults.SequenceNumber
	}
	if config.Tiger.SendFileName == "" {
		config.Tiger.SendFileName = defaults.SendFileName
	}
	if config.Tiger.QuantityMultiples == "" {
		config.Tiger.QuantityMultiples = defaults.QuantityMultiples
	}
	if config.Tiger.IsInfinite == "" {
		config.Tiger.IsInfinite = defaults.IsInfinite
	}
	if config.Tiger.IsCascade == "" {
		config.Tiger.IsCascade = defaults.IsCascade
	}
}

// validate checks the configuration for values that cannot work.
func validate(config *Config) error {
	if config.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be at least 1, got %d", config.MaxConcurrency)
	}
	if config.ArchiveFiles && config.ArchiveDir == "" {
		return fmt.Errorf("archive_files is set but archive_dir is empty")
	}
	return nil
}
