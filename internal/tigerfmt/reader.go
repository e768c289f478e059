// =============================================================================
// TigerTamer - TigerStop Reader Module
// =============================================================================
//
// This module reads .tiger files back into memory so finished output can be
// inspected or previewed without opening it on the saw. The label columns
// are resolved through the printStrings block instead of assuming a fixed
// order, so files written with or without the Note column both load.
//
// =============================================================================

package tigerfmt

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// =============================================================================
// PARSED REPRESENTATION
// =============================================================================

// TigerFile is a parsed .tiger file: the label header plus one TigerPart
// per Piece element.
type TigerFile struct {
	// Path is the source file path, empty when parsed from bytes.
	Path string

	// Header lists the display columns in order: the user's Index column
	// first, then the machine columns (Quantity, Completed, Length), then
	// the remaining user label columns.
	Header []string

	// Parts are the parsed pieces in file order.
	Parts []TigerPart
}

// TigerPart is a single piece from a .tiger file.
type TigerPart struct {
	Index     int
	Quantity  int
	Completed int
	Length    string
	Part      string
	No        string
	Note      string
}

// PartCount returns the total part count, summing piece quantities.
func (tf *TigerFile) PartCount() int {
	total := 0
	for _, p := range tf.Parts {
		total += p.Quantity
	}
	return total
}

// =============================================================================
// XML SHAPES
// =============================================================================

type xmlCutList struct {
	XMLName      xml.Name        `xml:"CutList"`
	PrintStrings []xmlLabelField `xml:"printStrings>LabelField"`
	Pieces       []xmlPiece      `xml:"pieces>Piece"`
}

type xmlLabelField struct {
	Header string `xml:"header"`
	Column int    `xml:"column"`
}

type xmlPiece struct {
	LabelStrings []string `xml:"labelStrings>string"`
	Length       string   `xml:"length"`
	Quantity     int      `xml:"quantity"`
	Completed    int      `xml:"completed"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseFile reads and parses a .tiger file.
func ParseFile(filePath string) (*TigerFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	tf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	tf.Path = filePath
	return tf, nil
}

// Parse parses .tiger file content.
func Parse(data []byte) (*TigerFile, error) {
	var doc xmlCutList
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	labels, err := labelColumns(doc.PrintStrings)
	if err != nil {
		return nil, err
	}

	tf := &TigerFile{Header: buildHeader(labels)}
	for i, piece := range doc.Pieces {
		part, err := parsePiece(piece, labels)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i+1, err)
		}
		tf.Parts = append(tf.Parts, part)
	}
	return tf, nil
}

// labelColumns returns the user label headers ordered by their column
// index from the printStrings block.
func labelColumns(fields []xmlLabelField) ([]string, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no label fields in printStrings")
	}

	labels := make([]string, len(fields))
	for _, f := range fields {
		if f.Column < 0 || f.Column >= len(labels) {
			return nil, fmt.Errorf("label column %d out of range", f.Column)
		}
		labels[f.Column] = f.Header
	}
	return labels, nil
}

// buildHeader interleaves the machine columns into the user labels for
// display: Index, Quantity, Completed, Length, Part, No, [Note].
func buildHeader(labels []string) []string {
	header := make([]string, 0, len(labels)+3)
	rest := labels
	if isIndexLabel(labels[0]) {
		header = append(header, labels[0])
		rest = labels[1:]
	}
	header = append(header, "Quantity", "Completed", "Length")
	header = append(header, rest...)
	return header
}

func isIndexLabel(label string) bool {
	lower := strings.ToLower(label)
	return lower == "index" || lower == "count"
}

// parsePiece maps a Piece's labelStrings onto the user label columns.
func parsePiece(piece xmlPiece, labels []string) (TigerPart, error) {
	part := TigerPart{
		Length:    piece.Length,
		Quantity:  piece.Quantity,
		Completed: piece.Completed,
	}

	for i, value := range piece.LabelStrings {
		if i >= len(labels) {
			return part, fmt.Errorf("label string %d has no matching header", i+1)
		}
		switch strings.ToLower(labels[i]) {
		case "index", "count":
			index, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return part, fmt.Errorf("invalid index %q: %w", value, err)
			}
			part.Index = index
		case "part":
			part.Part = value
		case "no":
			part.No = value
		case "note":
			part.Note = value
		}
	}
	return part, nil
}
