// =============================================================================
// TigerTamer - Unarchive Command
// =============================================================================
//
// This file defines the 'unarchive' command, which moves archived .dat
// files back into the dat directory so a job can be converted again, for
// example after a setting change or a bad board. Archived names carry
// their original job directory as a prefix, so files are restored to the
// subdirectory they came from.
//
// COMMAND USAGE:
//   tigertamer unarchive [--all]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozaik-tools/tigertamer/pkg/utils"
)

// unarchiveAll also deletes the generated .tiger files, undoing the whole
// conversion run.
var unarchiveAll bool

// unarchiveCmd represents the 'unarchive' command.
var unarchiveCmd = &cobra.Command{
	Use:   "unarchive",
	Short: "Move archived .dat files back into the dat directory",
	Long: `The unarchive command moves every file out of the archive directory back
into the dat directory, restoring each file to the job subdirectory it was
archived from. Restored files never overwrite existing ones; a name clash
gets an incremented file name instead.

With --all the generated .tiger files are deleted as well, undoing the
conversion run completely.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runUnarchive()
	},
}

func init() {
	rootCmd.AddCommand(unarchiveCmd)

	unarchiveCmd.Flags().BoolVar(&unarchiveAll, "all", false,
		"Also delete the generated .tiger files in the output directory")
}

// runUnarchive restores every archived file.
func runUnarchive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	fm := utils.NewFileManager(cfg.DatDir, cfg.TigerDir, cfg.ArchiveDir)
	restored, err := fm.Unarchive()
	if err != nil {
		return err
	}

	if len(restored) == 0 {
		fmt.Println("Archive is empty.")
	} else {
		for _, path := range restored {
			fmt.Printf("  %s\n", path)
		}
		fmt.Printf("Restored %d file(s)\n", len(restored))
	}

	if unarchiveAll {
		removed, err := fm.RemoveTigerFiles()
		if err != nil {
			return err
		}
		for _, path := range removed {
			fmt.Printf("  removed %s\n", path)
		}
		fmt.Printf("Removed %d output file(s)\n", len(removed))
	}
	return nil
}
