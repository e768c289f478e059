// =============================================================================
// TigerTamer - Main Entry Point
// =============================================================================
//
// This is the main entry point for the TigerTamer CLI application. It
// initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   tigertamer convert      - Convert Mozaik .dat files into .tiger files
//   tigertamer preview      - Show what a conversion would produce
//   tigertamer view         - Display the contents of .tiger files
//   tigertamer unarchive    - Restore archived .dat files
//   tigertamer version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/mozaik-tools/tigertamer/cmd"
)

func main() {
	cmd.Execute()
}
