// =============================================================================
// TigerTamer - View Command
// =============================================================================
//
// This file defines the 'view' command, which prints finished .tiger files
// in a readable table. This covers the "is the file on the saw the one I
// think it is" question without walking to the machine.
//
// COMMAND USAGE:
//   tigertamer view <files...>
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozaik-tools/tigertamer/internal/tigerfmt"
)

// viewCmd represents the 'view' command.
var viewCmd = &cobra.Command{
	Use:   "view <files...>",
	Short: "Display the contents of .tiger files",
	Long: `The view command parses TigerStop (.tiger) files and prints their pieces
as a table, one row per piece, in file order.`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(args)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

// runView parses and prints each .tiger file.
func runView(args []string) error {
	for i, path := range args {
		tf, err := tigerfmt.ParseFile(path)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		printTigerFile(tf)
	}
	return nil
}

// printTigerFile prints one parsed .tiger file as a table.
func printTigerFile(tf *tigerfmt.TigerFile) {
	plural := "pieces"
	if len(tf.Parts) == 1 {
		plural = "piece"
	}
	fmt.Printf("%s (%d %s, %d total):\n", tf.Path, len(tf.Parts), plural, tf.PartCount())

	hasNote := strings.Contains(strings.Join(tf.Header, " "), "Note")
	fmt.Printf("  %5s  %8s  %4s  %-5s  %-10s\n", "Index", "Length", "Qty", "Part", "No")
	for _, p := range tf.Parts {
		line := fmt.Sprintf("  %5d  %8s  %4d  %-5s  %-10s", p.Index, p.Length, p.Quantity, p.Part, p.No)
		if hasNote && p.Note != "" {
			line += "  " + p.Note
		}
		fmt.Println(line)
	}
}
