// =============================================================================
// TigerTamer - Mozaik .dat Parser
// =============================================================================
//
// This module reads Mozaik cutlist (.dat) files. A .dat file is plain CSV
// with no header row, one part per line:
//
//   count,width,length,type,no,extra_data
//
// Example:
//   2,2,42,BR,R1:4&5,Frame
//
// The parser only handles file IO and row-shape checks. All interpretation
// of the fields (quantity fixing, location splitting) happens in the
// cutlist package.
//
// =============================================================================

package datparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mozaik-tools/tigertamer/internal/cutlist"
)

// =============================================================================
// READING
// =============================================================================

// ReadFile reads a .dat file and returns its rows, with whitespace-only
// rows removed. Rows are not trimmed or interpreted.
func ReadFile(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	rows, err := ReadRows(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return rows, nil
}

// ReadRows reads .dat rows from a reader.
func ReadRows(r io.Reader) ([][]string, error) {
	csvReader := csv.NewReader(bufio.NewReader(r))

	// Mozaik writes unquoted fields, but be tolerant of hand-edited files.
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	rows := make([][]string, 0, len(allRows))
	for _, row := range allRows {
		if isRowEmpty(row) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// VALIDATION
// =============================================================================

// IsValidDatFile reports whether a file looks like a Mozaik cutlist by
// inspecting its first data row. Used during directory discovery to skip
// unrelated .dat files without parsing them fully.
func IsValidDatFile(filePath string) bool {
	file, err := os.Open(filePath)
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return isValidDatLine(line)
	}
	return false
}

// isValidDatLine checks a single line for the Mozaik row shape: the right
// number of comma-separated fields with a numeric count in front.
func isValidDatLine(line string) bool {
	fields := strings.Split(line, ",")
	if len(fields) != len(cutlist.MasterHeader) {
		return false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(fields[0])); err != nil {
		return false
	}
	return true
}

// =============================================================================
// PARSING
// =============================================================================

// ParseFile reads and parses a .dat file into a master cutlist in one step.
func ParseFile(filePath string, noSplit bool) (*cutlist.MasterFile, error) {
	rows, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	master, err := cutlist.Parse(rows, cutlist.ParseOptions{
		SourcePath: filePath,
		NoSplit:    noSplit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return master, nil
}
