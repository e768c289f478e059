// =============================================================================
// TigerTamer - Converter Module
// =============================================================================
//
// This module contains the conversion pipeline for a single Mozaik .dat
// file, from CSV rows to finished .tiger files on disk:
//
//   1. Read the .dat rows
//   2. Parse them into a master cutlist (quantity fixing, location splitting)
//   3. Group the parts into one width file per stock width
//   4. Generate a .tiger document per width file
//   5. Write the output files
//   6. Archive the source file
//
// CONCURRENCY:
//   Each file is processed in its own goroutine. The converter holds no
//   shared mutable state, so any number can run at once.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mozaik-tools/tigertamer/internal/config"
	"github.com/mozaik-tools/tigertamer/internal/cutlist"
	"github.com/mozaik-tools/tigertamer/internal/datparser"
	"github.com/mozaik-tools/tigertamer/internal/tigerfmt"
	"github.com/mozaik-tools/tigertamer/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single .dat file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// RunID identifies this conversion in the logs and the run report.
	RunID string

	// OutputFiles are the .tiger files that were written, one per width.
	// Empty if conversion failed or ran dry.
	OutputFiles []string

	// WidthFiles are the in-memory width files, kept for previewing and
	// reporting.
	WidthFiles []*cutlist.WidthFile

	// ArchivePath is where the source file was moved, empty when archiving
	// is off.
	ArchivePath string

	// Success indicates whether the conversion succeeded.
	Success bool

	// Error contains the error if conversion failed.
	Error error

	// Stats contains conversion statistics.
	Stats Stats
}

// Stats contains statistics about one conversion.
type Stats struct {
	// Rows is the number of data rows read from the .dat file.
	Rows int

	// Parts is the number of part records after splitting.
	Parts int

	// Pieces is the total piece count across all parts.
	Pieces int

	// Widths is the number of distinct stock widths, and so the number of
	// output files.
	Widths int

	// ProcessingTime is the time taken to convert the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter converts a single Mozaik .dat file into .tiger files.
type Converter struct {
	datPath string
	cfg     *config.Config
	fm      *utils.FileManager
	logger  *zap.SugaredLogger

	// DryRun parses and reports but writes and moves nothing.
	DryRun bool
}

// New creates a Converter for one input file.
func New(datPath string, cfg *config.Config, fm *utils.FileManager, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		datPath: datPath,
		cfg:     cfg,
		fm:      fm,
		logger:  logger.Sugar(),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.datPath,
		RunID:    uuid.New().String(),
	}

	log := c.logger.With("run_id", result.RunID, "file", c.datPath)
	log.Infow("converting file")

	// Step 1: read and parse the master cutlist.
	rows, err := datparser.ReadFile(c.datPath)
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.Rows = len(rows)

	master, err := cutlist.Parse(rows, cutlist.ParseOptions{
		SourcePath: c.datPath,
		NoSplit:    c.cfg.NoPartSplit,
	})
	if err != nil {
		result.Error = err
		return result
	}
	result.Stats.Pieces = master.TotalCount

	// Step 2: group into width files. This also combines near-duplicate
	// parts inside each width.
	widthFiles := master.IntoWidthFiles()
	result.WidthFiles = widthFiles
	result.Stats.Widths = len(widthFiles)
	for _, wf := range widthFiles {
		result.Stats.Parts += len(wf.Parts)
	}
	log.Debugw("grouped into width files",
		"widths", len(widthFiles),
		"pieces", master.TotalCount,
	)

	if c.DryRun {
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		return result
	}

	// Step 3: write one .tiger file per width.
	if err := os.MkdirAll(c.cfg.TigerDir, 0755); err != nil {
		result.Error = fmt.Errorf("failed to create output directory: %w", err)
		return result
	}

	opts := tigerfmt.GenerateOptions{
		Settings:  c.cfg.Tiger,
		ExtraData: c.cfg.ExtraData,
	}
	for _, wf := range widthFiles {
		outPath := filepath.Join(c.cfg.TigerDir, wf.FileName())
		data := tigerfmt.GenerateWithOptions(wf, opts)
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("failed to write %s: %w", outPath, err)
			return result
		}
		result.OutputFiles = append(result.OutputFiles, outPath)
		log.Debugw("wrote output file", "path", outPath, "parts", len(wf.Parts))
	}

	// Step 4: archive the source file, only after every output was written.
	if c.cfg.ArchiveFiles {
		archivePath, err := c.fm.ArchiveFile(c.datPath)
		if err != nil {
			result.Error = err
			return result
		}
		result.ArchivePath = archivePath
		log.Debugw("archived source file", "path", archivePath)
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)
	log.Infow("converted file",
		"outputs", len(result.OutputFiles),
		"pieces", result.Stats.Pieces,
		"elapsed", result.Stats.ProcessingTime,
	)
	return result
}

// =============================================================================
// BATCH PROCESSING
// =============================================================================

// RunAll converts a batch of .dat files concurrently, at most
// maxConcurrency at a time, and returns the results in input order.
func RunAll(datPaths []string, cfg *config.Config, fm *utils.FileManager, logger *zap.Logger, dryRun bool) []Result {
	maxConcurrency := cfg.MaxConcurrency
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	results := make([]Result, len(datPaths))
	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup

	for i, path := range datPaths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			conv := New(path, cfg, fm, logger)
			conv.DryRun = dryRun
			results[i] = conv.Run()
		}(i, path)
	}

	wg.Wait()
	return results
}
