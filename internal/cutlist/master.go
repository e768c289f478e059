// =============================================================================
// TigerTamer - Master File
// =============================================================================
//
// A MasterFile is the parsed form of one Mozaik .dat record set: an ordered
// sequence of part records, already expanded into atomic per-cab records by
// default. It owns the aggregate count cross-check and the regrouping of
// parts into per-width files.
//
// The aggregate check is a known-imperfect invariant. The pre-split total is
// accumulated from the raw row counts; rows that double-count annotated
// quantities make it legitimately disagree with the post-split total, so a
// mismatch is logged and never raised.
//
// =============================================================================

package cutlist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

func atoiTrim(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// MasterFile holds every part record parsed from one source record set.
type MasterFile struct {
	// SourcePath is the path of the .dat file these rows came from, empty
	// when parsed from an in-memory record set.
	SourcePath string

	// Parts is the ordered part sequence. With splitting enabled (the
	// default) every record is atomic.
	Parts []*PartRecord

	// TotalCount is the sum of the raw row counts at parse time, kept only
	// as a consistency signal against the post-split/combine totals.
	TotalCount int
}

// ParseOptions controls master-file parsing.
type ParseOptions struct {
	// SourcePath labels the master file for diagnostics and width-file
	// naming.
	SourcePath string

	// NoSplit keeps multi-location rows as single records instead of
	// expanding them into atomic per-cab records.
	NoSplit bool
}

// Parse builds a MasterFile from raw rows, each an ordered six-tuple of
// (count, width, length, type, location, note) strings. A row with the wrong
// column count or a non-integer count field is fatal for the whole record
// set; everything else self-corrects with a diagnostic.
func Parse(rows [][]string, opts ParseOptions) (*MasterFile, error) {
	m := &MasterFile{SourcePath: opts.SourcePath}
	for i, row := range rows {
		if len(row) != len(MasterHeader) {
			return nil, fmt.Errorf(
				"row %d: invalid column count (need %d, got %d)",
				i+1, len(MasterHeader), len(row),
			)
		}
		part, err := NewPart(row[0], row[1], row[2], row[3], row[4], row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rawCount, _ := atoiTrim(row[0])
		m.TotalCount += rawCount
		if opts.NoSplit {
			m.Parts = append(m.Parts, part)
		} else {
			m.Parts = append(m.Parts, part.Split()...)
		}
	}

	if split := m.PartTotal(); split != m.TotalCount {
		log.Debugw("part count is off after split",
			"source", m.SourcePath,
			"master", m.TotalCount,
			"split", split,
		)
	}
	return m, nil
}

// PartTotal sums the counts of the current part records.
func (m *MasterFile) PartTotal() int {
	total := 0
	for _, p := range m.Parts {
		total += p.Count
	}
	return total
}

// IntoWidthFiles regroups the parts by stock width, one WidthFile per
// distinct width, each already combined. Width files come back in ascending
// order of the raw width string — the ordering downstream consumers have
// always seen, quirks included ("10" sorts before "2").
func (m *MasterFile) IntoWidthFiles() []*WidthFile {
	if len(m.Parts) == 0 {
		return nil
	}
	byWidth := make(map[string]*WidthFile)
	for _, part := range m.Parts {
		wf, ok := byWidth[part.Width]
		if !ok {
			wf = NewWidthFile(m.SourcePath, part.Width)
			byWidth[part.Width] = wf
		}
		scoped := part.Copy()
		scoped.Width = ""
		wf.Parts = append(wf.Parts, scoped)
		wf.TotalCount += scoped.Count
	}

	widths := make([]string, 0, len(byWidth))
	for width := range byWidth {
		widths = append(widths, width)
	}
	sort.Strings(widths)

	files := make([]*WidthFile, 0, len(widths))
	total := 0
	for _, width := range widths {
		wf := byWidth[width]
		wf.Combine()
		total += wf.TotalCount
		files = append(files, wf)
	}

	if total == m.TotalCount {
		log.Debugw("part count is same",
			"master", m.TotalCount, "width_files", total)
	} else {
		log.Debugw("part count is off",
			"master", m.TotalCount, "width_files", total)
	}
	return files
}

// ToCSV renders every part back into raw CSV lines, one per record.
func (m *MasterFile) ToCSV() string {
	lines := make([]string, 0, len(m.Parts))
	for _, p := range m.Parts {
		lines = append(lines, p.ToCSVLine())
	}
	return strings.Join(lines, "\n")
}

func (m *MasterFile) String() string {
	return fmt.Sprintf("MasterFile(count=%d, source=%q, parts=%d)",
		m.TotalCount, m.SourcePath, len(m.Parts))
}
