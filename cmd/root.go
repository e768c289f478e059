// =============================================================================
// TigerTamer - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (tigertamer)
//   ├── convertCmd   (tigertamer convert)
//   ├── previewCmd   (tigertamer preview)
//   ├── viewCmd      (tigertamer view)
//   ├── unarchiveCmd (tigertamer unarchive)
//   └── versionCmd   (tigertamer version)
//
// The root command owns the global flags (--config, --verbose) and builds
// the shared config and logger for the subcommands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mozaik-tools/tigertamer/internal/config"
	"github.com/mozaik-tools/tigertamer/internal/cutlist"
	"github.com/mozaik-tools/tigertamer/internal/logging"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the configuration file. Empty means "use
// tigertamer.yaml if present, defaults otherwise".
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tigertamer",
	Short: "Convert Mozaik cutlists into TigerStop files",
	Long: `TigerTamer converts Mozaik cutlist (.dat) files into TigerStop (.tiger)
files the saw controller loads directly.

Mozaik writes one row per cut with compound location codes like
"R1:4&5(2)". TigerTamer expands those into one part per cabinet, corrects
the quantities, recombines duplicates, and writes one .tiger file per
stock width.

Example Usage:
  tigertamer convert                   # Convert all .dat files under dat_dir
  tigertamer convert --archive         # ...and move the sources to the archive
  tigertamer preview cuts.dat          # Show what would be generated
  tigertamer view "cuts[2in].tiger"    # Inspect a finished .tiger file`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadConfig loads the configuration honoring the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// buildLogger builds the application logger from the config and installs
// it into the cutlist engine, which is otherwise silent.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	cutlist.SetLogger(logger)
	return logger, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (default is tigertamer.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
