package converter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozaik-tools/tigertamer/internal/config"
	"github.com/mozaik-tools/tigertamer/internal/converter"
	"github.com/mozaik-tools/tigertamer/internal/tigerfmt"
	"github.com/mozaik-tools/tigertamer/pkg/utils"
)

// Two widths, one multi-cab location, 5 pieces total.
const sampleDat = "2,2,42,BR,R1:4&5,Frame\n1,2,42,BR,R1:4,Frame\n2,3,96,TR,R2:1(2),\n"

func setup(t *testing.T) (*config.Config, *utils.FileManager, string) {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.DatDir = root
	cfg.TigerDir = filepath.Join(root, "tiger")
	cfg.ArchiveDir = filepath.Join(root, "done")

	// A "cutlists" directory keeps the derived job name empty, so output
	// names depend only on the file name.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cutlists"), 0o755))
	datPath := filepath.Join(root, "cutlists", "cuts.dat")
	require.NoError(t, os.WriteFile(datPath, []byte(sampleDat), 0o644))

	fm := utils.NewFileManager(cfg.DatDir, cfg.TigerDir, cfg.ArchiveDir)
	return cfg, fm, datPath
}

func TestRunWritesWidthFiles(t *testing.T) {
	cfg, fm, datPath := setup(t)

	result := converter.New(datPath, cfg, fm, nil).Run()
	require.NoError(t, result.Error)
	require.True(t, result.Success)
	require.NotEmpty(t, result.RunID)

	require.Len(t, result.OutputFiles, 2)
	require.Equal(t, filepath.Join(cfg.TigerDir, "cuts[2in].tiger"), result.OutputFiles[0])
	require.Equal(t, filepath.Join(cfg.TigerDir, "cuts[3in].tiger"), result.OutputFiles[1])

	require.Equal(t, 3, result.Stats.Rows)
	require.Equal(t, 5, result.Stats.Pieces)
	require.Equal(t, 2, result.Stats.Widths)

	// The 2in file combines R1:4&5 + R1:4 into R1:4(2) and R1:5.
	tf, err := tigerfmt.ParseFile(result.OutputFiles[0])
	require.NoError(t, err)
	require.Equal(t, 3, tf.PartCount())
	require.Len(t, tf.Parts, 2)
	require.Equal(t, "R1:4(2)", tf.Parts[0].No)
	require.Equal(t, 2, tf.Parts[0].Quantity)
	require.Equal(t, "R1:5", tf.Parts[1].No)

	tf, err = tigerfmt.ParseFile(result.OutputFiles[1])
	require.NoError(t, err)
	require.Equal(t, 2, tf.PartCount())
	require.Equal(t, "R2:1(2)", tf.Parts[0].No)
}

func TestRunArchivesSource(t *testing.T) {
	cfg, fm, datPath := setup(t)
	cfg.ArchiveFiles = true

	result := converter.New(datPath, cfg, fm, nil).Run()
	require.NoError(t, result.Error)
	require.Equal(t, filepath.Join(cfg.ArchiveDir, "cutlists_cuts.dat"), result.ArchivePath)
	require.False(t, utils.FileExists(datPath))
	require.True(t, utils.FileExists(result.ArchivePath))

	// The job directory was emptied by the move, so it is gone too.
	require.NoDirExists(t, filepath.Join(cfg.DatDir, "cutlists"))
}

func TestRunDry(t *testing.T) {
	cfg, fm, datPath := setup(t)
	cfg.ArchiveFiles = true

	conv := converter.New(datPath, cfg, fm, nil)
	conv.DryRun = true
	result := conv.Run()

	require.True(t, result.Success)
	require.Empty(t, result.OutputFiles)
	require.Empty(t, result.ArchivePath)
	require.Len(t, result.WidthFiles, 2)
	require.True(t, utils.FileExists(datPath))
	require.NoDirExists(t, cfg.TigerDir)
}

func TestRunBadFile(t *testing.T) {
	cfg, fm, _ := setup(t)
	badPath := filepath.Join(cfg.DatDir, "bad.dat")
	require.NoError(t, os.WriteFile(badPath, []byte("not,enough,columns\n"), 0o644))

	result := converter.New(badPath, cfg, fm, nil).Run()
	require.False(t, result.Success)
	require.Error(t, result.Error)
}

func TestRunAll(t *testing.T) {
	cfg, fm, datPath := setup(t)
	second := filepath.Join(cfg.DatDir, "more.dat")
	require.NoError(t, os.WriteFile(second, []byte("1,2,30,BR,R1:1,\n"), 0o644))

	results := converter.RunAll([]string{datPath, second}, cfg, fm, nil, false)
	require.Len(t, results, 2)
	require.Equal(t, datPath, results[0].FilePath)
	require.Equal(t, second, results[1].FilePath)
	for _, r := range results {
		require.True(t, r.Success)
	}
}
