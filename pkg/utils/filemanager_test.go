package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozaik-tools/tigertamer/pkg/utils"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("1,2,42,BR,R1:1,\n"), 0o644))
}

func TestDiscoverDatFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "kitchen.dat"))
	touch(t, filepath.Join(root, "jobs", "uppers.dat"))
	touch(t, filepath.Join(root, "jobs", "notes.txt"))
	touch(t, filepath.Join(root, "old", "lowers.dat"))
	touch(t, filepath.Join(root, "test job", "sample.dat"))

	fm := utils.NewFileManager(root, root, "")
	fm.IgnoreDirs = []string{filepath.Join(root, "old")}
	fm.IgnoreStrs = []string{"test"}

	files, err := fm.DiscoverDatFiles(nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "jobs", "uppers.dat"),
		filepath.Join(root, "kitchen.dat"),
	}, files)
}

func TestDiscoverIgnoreStrsMatchBelowDatDir(t *testing.T) {
	// The dat directory itself contains the ignore string; only the file
	// whose path below it matches may be skipped.
	datDir := filepath.Join(t.TempDir(), "shop jobs")
	touch(t, filepath.Join(datDir, "kitchen.dat"))
	touch(t, filepath.Join(datDir, "shop list.dat"))

	fm := utils.NewFileManager(datDir, datDir, "")
	fm.IgnoreStrs = []string{"shop"}

	files, err := fm.DiscoverDatFiles(nil)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(datDir, "kitchen.dat")}, files)
}

func TestDiscoverSkipsArchiveDir(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "done")
	touch(t, filepath.Join(root, "kitchen.dat"))
	touch(t, filepath.Join(archive, "finished.dat"))

	fm := utils.NewFileManager(root, root, archive)
	files, err := fm.DiscoverDatFiles(nil)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "kitchen.dat")}, files)
}

func TestDiscoverWithValidator(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "good.dat"))
	touch(t, filepath.Join(root, "bad.dat"))

	fm := utils.NewFileManager(root, root, "")
	files, err := fm.DiscoverDatFiles(func(path string) bool {
		return !strings.Contains(path, "bad")
	})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "good.dat")}, files)
}

func TestArchiveFile(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "done")
	src := filepath.Join(root, "jobs", "kitchen.dat")
	touch(t, src)

	fm := utils.NewFileManager(root, root, archive)

	dest, err := fm.ArchiveFile(src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(archive, "jobs_kitchen.dat"), dest)
	require.False(t, utils.FileExists(src))
	require.True(t, utils.FileExists(dest))

	// The emptied job directory is cleaned up.
	require.NoDirExists(t, filepath.Join(root, "jobs"))
}

func TestArchiveFileKeepsNonEmptyDir(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "done")
	src := filepath.Join(root, "jobs", "kitchen.dat")
	touch(t, src)
	touch(t, filepath.Join(root, "jobs", "uppers.dat"))

	fm := utils.NewFileManager(root, root, archive)
	_, err := fm.ArchiveFile(src)
	require.NoError(t, err)
	require.DirExists(t, filepath.Join(root, "jobs"))
}

func TestArchiveFileInDatDir(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "done")
	src := filepath.Join(root, "kitchen.dat")
	touch(t, src)

	fm := utils.NewFileManager(root, root, archive)
	dest, err := fm.ArchiveFile(src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(archive, filepath.Base(root)+"_kitchen.dat"), dest)

	// The dat directory itself is never removed, even when emptied.
	require.DirExists(t, root)
}

func TestArchiveFileIncrements(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "done")
	touch(t, filepath.Join(archive, "jobs_kitchen.dat"))
	touch(t, filepath.Join(archive, "jobs_kitchen(2).dat"))

	src := filepath.Join(root, "jobs", "kitchen.dat")
	touch(t, src)

	fm := utils.NewFileManager(root, root, archive)
	dest, err := fm.ArchiveFile(src)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(archive, "jobs_kitchen(3).dat"), dest)
}

func TestArchiveDisabled(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "kitchen.dat")
	touch(t, src)

	fm := utils.NewFileManager(root, root, "")
	dest, err := fm.ArchiveFile(src)
	require.NoError(t, err)
	require.Equal(t, src, dest)
	require.True(t, utils.FileExists(src))
}

func TestUnarchive(t *testing.T) {
	root := t.TempDir()
	archive := filepath.Join(root, "done")
	touch(t, filepath.Join(archive, "jobs_kitchen.dat"))
	touch(t, filepath.Join(archive, "jobs_uppers.dat"))

	fm := utils.NewFileManager(root, root, archive)
	restored, err := fm.Unarchive()
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "jobs", "kitchen.dat"),
		filepath.Join(root, "jobs", "uppers.dat"),
	}, restored)
	require.True(t, utils.FileExists(filepath.Join(root, "jobs", "kitchen.dat")))
}

func TestUnarchiveRoundTrip(t *testing.T) {
	// Same-named cutlists from different job folders archive and restore
	// without losing their origin.
	root := t.TempDir()
	archive := filepath.Join(root, "done")
	smith := filepath.Join(root, "smith", "cutlist.dat")
	jones := filepath.Join(root, "jones", "cutlist.dat")
	touch(t, smith)
	touch(t, jones)

	fm := utils.NewFileManager(root, root, archive)
	for _, src := range []string{smith, jones} {
		_, err := fm.ArchiveFile(src)
		require.NoError(t, err)
	}

	restored, err := fm.Unarchive()
	require.NoError(t, err)
	require.Equal(t, []string{jones, smith}, restored)
	require.True(t, utils.FileExists(smith))
	require.True(t, utils.FileExists(jones))
}

func TestUnarchiveDatDirPrefix(t *testing.T) {
	// A prefix naming the dat directory itself restores the file flat
	// instead of nesting it one level down.
	datDir := filepath.Join(t.TempDir(), "jobs")
	archive := filepath.Join(datDir, "done")
	touch(t, filepath.Join(archive, "jobs_kitchen.dat"))
	touch(t, filepath.Join(archive, "plain.dat"))

	fm := utils.NewFileManager(datDir, datDir, archive)
	restored, err := fm.Unarchive()
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(datDir, "kitchen.dat"),
		filepath.Join(datDir, "plain.dat"),
	}, restored)
}

func TestRemoveTigerFiles(t *testing.T) {
	root := t.TempDir()
	tigerDir := filepath.Join(root, "tiger")
	touch(t, filepath.Join(tigerDir, "cuts[2in].tiger"))
	touch(t, filepath.Join(tigerDir, "cuts[3in].tiger"))
	touch(t, filepath.Join(tigerDir, "notes.txt"))

	fm := utils.NewFileManager(root, tigerDir, "")
	removed, err := fm.RemoveTigerFiles()
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(tigerDir, "cuts[2in].tiger"),
		filepath.Join(tigerDir, "cuts[3in].tiger"),
	}, removed)
	require.False(t, utils.FileExists(removed[0]))
	require.True(t, utils.FileExists(filepath.Join(tigerDir, "notes.txt")))
}

func TestUnarchiveWithoutArchiveDir(t *testing.T) {
	fm := utils.NewFileManager(t.TempDir(), "", "")
	_, err := fm.Unarchive()
	require.Error(t, err)
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	tigerDir := filepath.Join(root, "tiger")
	archive := filepath.Join(root, "done")

	fm := utils.NewFileManager(root, tigerDir, archive)
	require.NoError(t, fm.EnsureDirectories())
	require.DirExists(t, tigerDir)
	require.DirExists(t, archive)

	// No archive directory configured is fine.
	fm = utils.NewFileManager(root, tigerDir, "")
	require.NoError(t, fm.EnsureDirectories())
}

func TestIncrementPath(t *testing.T) {
	root := t.TempDir()
	free := filepath.Join(root, "free.dat")
	require.Equal(t, free, utils.IncrementPath(free))

	taken := filepath.Join(root, "taken.dat")
	touch(t, taken)
	require.Equal(t, filepath.Join(root, "taken(2).dat"), utils.IncrementPath(taken))
}
