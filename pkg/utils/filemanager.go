// =============================================================================
// TigerTamer - File Manager Utility
// =============================================================================
//
// This module handles the file shuffling around a conversion run:
//   - Recursive discovery of Mozaik .dat files, with ignore lists
//   - Archival of processed .dat files (move, never overwrite)
//   - Unarchival, for re-running a job after a bad cut
//
// ARCHIVAL STRATEGY:
//   Source files are moved to the archive directory only after every output
//   file was written. The archived name carries the file's parent directory
//   as a prefix ("jobs/cuts.dat" -> "jobs_cuts.dat") so same-named cutlists
//   from different job folders keep their origin and can be restored to it.
//   When the archive already holds a file with the same name, the new one
//   gets an incremented name ("list.dat" -> "list(2).dat") so repeated runs
//   of the same job never clobber each other.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the converter.
type FileManager struct {
	// DatDir is the directory scanned for Mozaik .dat files.
	DatDir string

	// TigerDir is the directory where output files are written.
	TigerDir string

	// ArchiveDir is the directory processed .dat files are moved into.
	// Empty disables archiving.
	ArchiveDir string

	// IgnoreDirs lists directories skipped during discovery. The archive
	// directory is always skipped.
	IgnoreDirs []string

	// IgnoreStrs lists substrings; files whose path contains any of them
	// are skipped during discovery.
	IgnoreStrs []string
}

// NewFileManager creates a FileManager for the given directories.
func NewFileManager(datDir, tigerDir, archiveDir string) *FileManager {
	return &FileManager{
		DatDir:     datDir,
		TigerDir:   tigerDir,
		ArchiveDir: archiveDir,
	}
}

// EnsureDirectories creates the output and archive directories if needed.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{fm.TigerDir}
	if fm.ArchiveDir != "" {
		dirs = append(dirs, fm.ArchiveDir)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverDatFiles scans DatDir recursively for .dat files, honoring the
// ignore lists. The optional validate callback lets the caller reject files
// by content (Mozaik is not the only producer of .dat files).
func (fm *FileManager) DiscoverDatFiles(validate func(path string) bool) ([]string, error) {
	var files []string

	err := filepath.Walk(fm.DatDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if fm.ignoredDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.EqualFold(filepath.Ext(path), ".dat") {
			return nil
		}
		if fm.ignoredPath(path) {
			return nil
		}
		if validate != nil && !validate(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", fm.DatDir, err)
	}

	sort.Strings(files)
	return files, nil
}

// ignoredDir reports whether a directory should be skipped entirely.
func (fm *FileManager) ignoredDir(dir string) bool {
	if fm.ArchiveDir != "" && sameDir(dir, fm.ArchiveDir) {
		return true
	}
	for _, ignored := range fm.IgnoreDirs {
		if sameDir(dir, ignored) {
			return true
		}
	}
	return false
}

// ignoredPath reports whether a file path matches any ignore substring.
// Only the portion below DatDir is matched, so the directories the dat
// directory happens to live under never trip an ignore string.
func (fm *FileManager) ignoredPath(path string) bool {
	rel, err := filepath.Rel(fm.DatDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	lower := strings.ToLower(rel)
	for _, s := range fm.IgnoreStrs {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// sameDir compares two directory paths after cleaning them.
func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveFile moves a processed .dat file into the archive directory,
// returning the path it ended up at. The archived name is the file name
// prefixed with its parent directory's base name, which is how Unarchive
// knows where to put it back. A job directory left empty by the move is
// removed, unless it is the dat directory itself. With no archive
// directory configured the file stays put.
func (fm *FileManager) ArchiveFile(filePath string) (string, error) {
	if fm.ArchiveDir == "" {
		return filePath, nil
	}

	if err := os.MkdirAll(fm.ArchiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	parentDir := filepath.Dir(filePath)
	name := filepath.Base(parentDir) + "_" + filepath.Base(filePath)
	dest := IncrementPath(filepath.Join(fm.ArchiveDir, name))
	if err := moveFile(filePath, dest); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", filePath, err)
	}

	if !sameDir(parentDir, fm.DatDir) {
		removeDirIfEmpty(parentDir)
	}
	return dest, nil
}

// Unarchive moves every file out of the archive directory back into DatDir,
// re-creating the job subdirectory encoded in the archived name, and
// returns the restored paths. Restored files never overwrite existing ones.
func (fm *FileManager) Unarchive() ([]string, error) {
	if fm.ArchiveDir == "" {
		return nil, fmt.Errorf("no archive directory configured")
	}

	entries, err := os.ReadDir(fm.ArchiveDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	datBase := filepath.Base(filepath.Clean(fm.DatDir))
	var restored []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src := filepath.Join(fm.ArchiveDir, entry.Name())
		dest := filepath.Join(fm.DatDir, restoredRelPath(entry.Name(), datBase))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return restored, fmt.Errorf("failed to restore %s: %w", src, err)
		}
		dest = IncrementPath(dest)
		if err := moveFile(src, dest); err != nil {
			return restored, fmt.Errorf("failed to unarchive %s: %w", src, err)
		}
		restored = append(restored, dest)
	}

	sort.Strings(restored)
	return restored, nil
}

// restoredRelPath maps an archived file name back to its path relative to
// the dat directory. The subdirectory prefix is dropped when it names the
// dat directory itself; a name without a prefix restores flat.
func restoredRelPath(archName, datBase string) string {
	subdir, name, found := strings.Cut(archName, "_")
	if !found || subdir == "" || name == "" {
		return archName
	}
	if strings.HasSuffix(datBase, subdir) {
		return name
	}
	return filepath.Join(subdir, name)
}

// RemoveTigerFiles deletes every .tiger file in the output directory,
// returning the removed paths. Used when unarchiving a whole run, so the
// restored sources do not sit next to stale outputs.
func (fm *FileManager) RemoveTigerFiles() ([]string, error) {
	entries, err := os.ReadDir(fm.TigerDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".tiger") {
			continue
		}
		path := filepath.Join(fm.TigerDir, entry.Name())
		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		removed = append(removed, path)
	}

	sort.Strings(removed)
	return removed, nil
}

// IncrementPath returns path unchanged if nothing exists there, otherwise
// the first free "name(2).ext", "name(3).ext", ... variant.
func IncrementPath(path string) string {
	if !FileExists(path) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s(%d)%s", base, i, ext)
		if !FileExists(candidate) {
			return candidate
		}
	}
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// removeDirIfEmpty removes a directory if it holds nothing. Failure is not
// worth failing a run over; the job is already archived at that point.
func removeDirIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	os.Remove(dir)
}

// moveFile renames src to dst, falling back to copy-and-delete when the
// rename crosses a filesystem boundary.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
