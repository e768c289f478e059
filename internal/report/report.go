// =============================================================================
// TigerTamer - Run Report Module
// =============================================================================
//
// This module writes an XLSX summary of a conversion run, one row per
// output file. The shop keeps these to reconcile material usage: the linear
// length column is the total inches of stock each width file will consume,
// so length math is done with decimals, not floats.
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mozaik-tools/tigertamer/internal/converter"
	"github.com/mozaik-tools/tigertamer/internal/cutlist"
)

const sheetName = "Conversion"

var header = []string{
	"Source File",
	"Output File",
	"Width",
	"Parts",
	"Pieces",
	"Linear Inches",
}

// =============================================================================
// REPORT ROWS
// =============================================================================

// Row is one line of the report, covering a single width file.
type Row struct {
	SourceFile   string
	OutputFile   string
	Width        string
	Parts        int
	Pieces       int
	LinearInches decimal.Decimal
}

// BuildRows flattens conversion results into report rows. Failed results
// are skipped; they are reported on the console instead.
func BuildRows(results []converter.Result) []Row {
	var rows []Row
	for _, result := range results {
		if !result.Success {
			continue
		}
		for _, wf := range result.WidthFiles {
			rows = append(rows, Row{
				SourceFile:   result.FilePath,
				OutputFile:   wf.FileName(),
				Width:        wf.Width,
				Parts:        len(wf.Parts),
				Pieces:       pieceCount(wf),
				LinearInches: linearInches(wf),
			})
		}
	}
	return rows
}

// pieceCount sums the per-part counts of a width file.
func pieceCount(wf *cutlist.WidthFile) int {
	total := 0
	for _, p := range wf.Parts {
		total += p.Count
	}
	return total
}

// linearInches sums length times count across a width file. Lengths that do
// not parse as numbers contribute nothing.
func linearInches(wf *cutlist.WidthFile) decimal.Decimal {
	total := decimal.Zero
	for _, p := range wf.Parts {
		length, err := decimal.NewFromString(p.Length)
		if err != nil {
			continue
		}
		total = total.Add(length.Mul(decimal.NewFromInt(int64(p.Count))))
	}
	return total
}

// =============================================================================
// XLSX OUTPUT
// =============================================================================

// Write writes the run report for a batch of results into dir, returning
// the report path. No report is written when nothing succeeded.
func Write(results []converter.Result, dir string) (string, error) {
	rows := BuildRows(results)
	if len(rows) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	name := fmt.Sprintf("tigertamer_report_%s.xlsx", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	if err := writeFile(rows, path); err != nil {
		return "", err
	}
	return path, nil
}

// writeFile renders the rows into an XLSX workbook at path.
func writeFile(rows []Row, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to set up sheet: %w", err)
	}

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	totalParts, totalPieces := 0, 0
	totalInches := decimal.Zero

	for i, row := range rows {
		values := []interface{}{
			row.SourceFile,
			row.OutputFile,
			row.Width,
			row.Parts,
			row.Pieces,
			row.LinearInches.String(),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}

		totalParts += row.Parts
		totalPieces += row.Pieces
		totalInches = totalInches.Add(row.LinearInches)
	}

	// Totals row, below the data.
	totalRow := len(rows) + 2
	totals := []interface{}{
		"Total", "", "", totalParts, totalPieces, totalInches.String(),
	}
	for col, value := range totals {
		cell, err := excelize.CoordinatesToCellName(col+1, totalRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("failed to write totals: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
