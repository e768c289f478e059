// =============================================================================
// TigerTamer - Width Files
// =============================================================================
//
// The TigerStop controller wants one cutlist per stock width, so a WidthFile
// is a part-record collection restricted to a single width (the records
// themselves carry no width field). It owns the combination step that folds
// near-duplicate atomic records back into minimal annotated records.
//
// =============================================================================

package cutlist

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Words stripped out of Mozaik file and job names when deriving the
// human-friendly width-file name.
var (
	fileNoiseWords = []string{"(Face Frames)", "3-4 Maple Board"}
	jobNoiseWords  = []string{"cutlists", "tigerstop"}
	spacePat       = regexp.MustCompile(`\s+`)
)

// WidthFile holds the parts of one master file that share a stock width.
type WidthFile struct {
	// Width is the stock width these parts are cut from, as the raw string
	// from the master rows.
	Width string

	// SourceName is the human-friendly name derived from the master file
	// path, without extension. See FileName.
	SourceName string

	// Parts is the ordered, width-scoped part sequence. After Combine, no
	// two records are similar to each other.
	Parts []*PartRecord

	// TotalCount is the total piece count across all parts.
	TotalCount int
}

// NewWidthFile creates an empty WidthFile for one stock width, deriving the
// display name from the master file path.
func NewWidthFile(sourcePath, width string) *WidthFile {
	w := width
	if w == "" {
		w = "0"
	}
	return &WidthFile{
		Width:      w,
		SourceName: fixFileName(sourcePath, w),
	}
}

// FileName returns the output file name for this width file.
func (w *WidthFile) FileName() string {
	return w.SourceName + ".tiger"
}

// Combine folds the parts into a PartTree and flattens it back, merging
// records that describe the same physical cut split across multiple source
// rows. The replacement list is fully de-duplicated: each surviving record
// carries the accumulated count and, when above one, the "(n)" location
// annotation. Calling it again is a no-op, and the result does not depend on
// the order parts were appended.
func (w *WidthFile) Combine() {
	if len(w.Parts) == 0 {
		return
	}
	before := len(w.Parts)
	tree := NewPartTree()
	for _, part := range w.Parts {
		tree.Fold(part)
	}
	w.Parts = tree.ToRecords()
	if combined := before - len(w.Parts); combined > 0 {
		log.Debugw("combined parts",
			"width", w.Width,
			"before", before,
			"after", len(w.Parts),
		)
	}
}

// Tree folds the current parts into a fresh PartTree, for alternate
// renderings (line re-export, indented printing).
func (w *WidthFile) Tree() PartTree {
	tree := NewPartTree()
	for _, part := range w.Parts {
		tree.Fold(part)
	}
	return tree
}

func (w *WidthFile) String() string {
	return fmt.Sprintf("WidthFile(count=%d, width=%q, name=%q)",
		w.TotalCount, w.Width, w.SourceName)
}

// fixFileName derives a presentable width-file name from the master file
// path: "<job name> <file name>[<width>in]". The job name is guessed from
// the containing directory; boilerplate Mozaik words are stripped from both.
func fixFileName(sourcePath, width string) string {
	jobName := jobNameFromPath(sourcePath)

	name := filepath.Base(sourcePath)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = stripWords(name, fileNoiseWords)
	name = strings.TrimSpace(name)

	switch {
	case name == "" && jobName != "":
		log.Debugw("no good file name, using job name", "job", jobName)
		name = jobName
	case name == "" && jobName == "":
		log.Debugw("no good file name or job name", "path", sourcePath)
		name = "Unknown Job"
	case jobName != "":
		name = jobName + " " + name
	}
	return fmt.Sprintf("%s[%sin]", name, width)
}

// jobNameFromPath guesses the job name from the master file's directory.
func jobNameFromPath(sourcePath string) string {
	jobDir := filepath.Base(filepath.Dir(sourcePath))
	if jobDir == "." || jobDir == string(filepath.Separator) {
		return ""
	}
	name := stripWords(strings.ToLower(jobDir), jobNoiseWords)
	return titleCase(strings.TrimSpace(name))
}

// stripWords removes each word from s, case preserved, and collapses the
// leftover doubled spaces.
func stripWords(s string, words []string) string {
	for _, word := range words {
		s = strings.ReplaceAll(s, word, "")
	}
	return spacePat.ReplaceAllString(s, " ")
}

func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = strings.ToUpper(f[:1]) + f[1:]
	}
	return strings.Join(fields, " ")
}
