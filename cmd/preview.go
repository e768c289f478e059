// =============================================================================
// TigerTamer - Preview Command
// =============================================================================
//
// This file defines the 'preview' command, which shows what a conversion
// would produce without writing anything. Useful for checking a cutlist
// before committing the saw to it.
//
// COMMAND USAGE:
//   tigertamer preview [files...] [flags]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozaik-tools/tigertamer/internal/datparser"
	"github.com/mozaik-tools/tigertamer/pkg/utils"
)

// previewCSV re-exports the parsed master file as CSV lines instead of the
// per-width part listing.
var previewCSV bool

// previewNoSplit previews without splitting multi-cabinet locations.
var previewNoSplit bool

// previewCmd represents the 'preview' command.
var previewCmd = &cobra.Command{
	Use:   "preview [files...]",
	Short: "Show what a conversion would produce, without writing files",
	Long: `The preview command parses Mozaik .dat files and prints the width files
that a conversion would generate: one section per output file, one line per
combined part. Nothing is written or moved.

With --csv the parsed master file is re-exported as CSV lines, followed by
the combined lines of each width file. Diffing the first section against
the source file shows what parsing did; the later sections show what
combining did.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(args)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewCSV, "csv", false,
		"Re-export the parsed master and combined width files as CSV lines")
	previewCmd.Flags().BoolVar(&previewNoSplit, "no-split", false,
		"Do not split multi-cabinet locations into one part per cabinet")
}

// runPreview parses and prints each file.
func runPreview(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	datFiles := args
	if len(datFiles) == 0 {
		fm := utils.NewFileManager(cfg.DatDir, cfg.TigerDir, cfg.ArchiveDir)
		fm.IgnoreDirs = cfg.IgnoreDirs
		fm.IgnoreStrs = cfg.IgnoreStrs
		datFiles, err = fm.DiscoverDatFiles(datparser.IsValidDatFile)
		if err != nil {
			return err
		}
	}
	if len(datFiles) == 0 {
		fmt.Println("No Mozaik .dat files found.")
		return nil
	}

	noSplit := cfg.NoPartSplit || previewNoSplit
	for _, datFile := range datFiles {
		master, err := datparser.ParseFile(datFile, noSplit)
		if err != nil {
			return err
		}

		if previewCSV {
			fmt.Printf("# %s\n%s\n", datFile, master.ToCSV())
			for _, wf := range master.IntoWidthFiles() {
				fmt.Printf("\n# %s\n", wf.FileName())
				for _, line := range wf.Tree().ToLines(wf.Width) {
					fmt.Println(line)
				}
			}
			continue
		}

		fmt.Printf("%s (%d pieces):\n", datFile, master.TotalCount)
		for _, wf := range master.IntoWidthFiles() {
			fmt.Printf("  %s (%d parts):\n", wf.FileName(), len(wf.Parts))
			for _, p := range wf.Parts {
				line := fmt.Sprintf("    %3d x %-8s %-4s %s", p.Count, p.Length, p.Type, p.Location)
				if p.Note != "" {
					line += "  (" + p.Note + ")"
				}
				fmt.Println(line)
			}
		}
	}
	return nil
}
