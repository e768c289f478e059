// =============================================================================
// TigerTamer - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which runs the full conversion
// pipeline over a set of Mozaik .dat files.
//
// COMMAND USAGE:
//   tigertamer convert [files...] [flags]
//
// With no file arguments the configured dat directory is scanned
// recursively, honoring the ignore lists. Files are converted concurrently;
// an error in one file does not stop the others.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mozaik-tools/tigertamer/internal/config"
	"github.com/mozaik-tools/tigertamer/internal/converter"
	"github.com/mozaik-tools/tigertamer/internal/datparser"
	"github.com/mozaik-tools/tigertamer/internal/report"
	"github.com/mozaik-tools/tigertamer/internal/tigerfmt"
	"github.com/mozaik-tools/tigertamer/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// outputDir overrides the configured .tiger output directory.
var outputDir string

// archive moves source files into the archive directory after conversion.
var archive bool

// ignoreDirs adds directories to skip during discovery.
var ignoreDirs []string

// ignoreStrs adds path substrings to skip during discovery.
var ignoreStrs []string

// noSplit disables splitting multi-cabinet locations.
var noSplit bool

// extraData adds the part note as a fourth label column.
var extraData bool

// namesOnly prints the output file names without writing anything.
var namesOnly bool

// toStdout prints the generated XML to stdout instead of writing files.
var toStdout bool

// writeReport writes an XLSX summary of the run.
var writeReport bool

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

// convertCmd represents the 'convert' command.
var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert Mozaik .dat files into TigerStop .tiger files",
	Long: `The convert command reads Mozaik cutlist (.dat) files, expands their
compound location codes into one part per cabinet, recombines duplicate
parts, and writes one .tiger file per stock width.

With no arguments, the configured dat directory is scanned recursively.
Files that do not look like Mozaik cutlists are skipped.

On success, with --archive, the source files are moved to the archive
directory. A source file is never moved before all of its output files
were written.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&outputDir, "output", "o", "",
		"Directory for generated .tiger files (overrides config)")
	convertCmd.Flags().BoolVarP(&archive, "archive", "a", false,
		"Move source files to the archive directory after conversion")
	convertCmd.Flags().StringSliceVar(&ignoreDirs, "ignore", nil,
		"Directory to skip during discovery (repeatable)")
	convertCmd.Flags().StringSliceVar(&ignoreStrs, "ignore-str", nil,
		"Skip files whose path contains this substring (repeatable)")
	convertCmd.Flags().BoolVar(&noSplit, "no-split", false,
		"Do not split multi-cabinet locations into one part per cabinet")
	convertCmd.Flags().BoolVarP(&extraData, "extra", "e", false,
		"Include the part note as an extra label column")
	convertCmd.Flags().BoolVarP(&namesOnly, "names-only", "n", false,
		"Print the output file names without writing anything")
	convertCmd.Flags().BoolVar(&toStdout, "stdout", false,
		"Print the generated XML to stdout instead of writing files")
	convertCmd.Flags().BoolVarP(&writeReport, "report", "r", false,
		"Write an XLSX summary of the run to the report directory")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert orchestrates the conversion run.
func runConvert(args []string) error {
	startTime := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flags override the config file.
	if outputDir != "" {
		cfg.TigerDir = outputDir
	}
	if archive {
		cfg.ArchiveFiles = true
		if cfg.ArchiveDir == "" {
			return fmt.Errorf("--archive needs archive_dir set in the config")
		}
	}
	cfg.IgnoreDirs = append(cfg.IgnoreDirs, ignoreDirs...)
	cfg.IgnoreStrs = append(cfg.IgnoreStrs, ignoreStrs...)
	if noSplit {
		cfg.NoPartSplit = true
	}
	if extraData {
		cfg.ExtraData = true
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	fm := utils.NewFileManager(cfg.DatDir, cfg.TigerDir, cfg.ArchiveDir)
	fm.IgnoreDirs = cfg.IgnoreDirs
	fm.IgnoreStrs = cfg.IgnoreStrs

	// Use explicit file arguments when given, discover otherwise.
	datFiles := args
	if len(datFiles) == 0 {
		datFiles, err = fm.DiscoverDatFiles(datparser.IsValidDatFile)
		if err != nil {
			return err
		}
	}
	if len(datFiles) == 0 {
		fmt.Println("No Mozaik .dat files found.")
		return nil
	}

	if toStdout {
		return convertToStdout(datFiles, cfg)
	}

	if !namesOnly {
		if err := fm.EnsureDirectories(); err != nil {
			return err
		}
	}

	results := converter.RunAll(datFiles, cfg, fm, logger, namesOnly)

	if namesOnly {
		for _, result := range results {
			if result.Error != nil {
				fmt.Fprintf(os.Stderr, "  ✗ %s: %v\n", result.FilePath, result.Error)
				continue
			}
			for _, wf := range result.WidthFiles {
				fmt.Println(filepath.Join(cfg.TigerDir, wf.FileName()))
			}
		}
		return nil
	}

	// Print per-file outcomes and the run summary.
	var successCount, errorCount int
	for _, result := range results {
		if result.Success {
			successCount++
			for _, out := range result.OutputFiles {
				fmt.Printf("  ✓ %s -> %s\n", filepath.Base(result.FilePath), out)
			}
		} else {
			errorCount++
			fmt.Printf("  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	fmt.Printf("\nConverted %d of %d file(s) in %s\n",
		successCount, len(datFiles), time.Since(startTime).Round(time.Millisecond))

	if writeReport {
		reportPath, err := report.Write(results, cfg.ReportDir)
		if err != nil {
			return err
		}
		if reportPath != "" {
			fmt.Printf("Report written to %s\n", reportPath)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) failed", errorCount)
	}
	return nil
}

// convertToStdout prints the generated .tiger XML for each input file
// instead of writing it, for piping and eyeballing.
func convertToStdout(datFiles []string, cfg *config.Config) error {
	opts := tigerfmt.GenerateOptions{
		Settings:  cfg.Tiger,
		ExtraData: cfg.ExtraData,
	}

	for _, datFile := range datFiles {
		master, err := datparser.ParseFile(datFile, cfg.NoPartSplit)
		if err != nil {
			return err
		}
		for _, wf := range master.IntoWidthFiles() {
			fmt.Printf("\n# %s\n", wf.FileName())
			os.Stdout.Write(tigerfmt.GenerateWithOptions(wf, opts))
		}
	}
	return nil
}
