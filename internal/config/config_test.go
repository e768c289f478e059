package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozaik-tools/tigertamer/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tigertamer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
dat_dir: /jobs/cutlists
archive_dir: /jobs/done
archive_files: true
extra_data: true
ignore_strs:
  - test
tiger:
  style: Pusher
logging:
  level: debug
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, "/jobs/cutlists", cfg.DatDir)
	require.Equal(t, "/jobs/done", cfg.ArchiveDir)
	require.True(t, cfg.ArchiveFiles)
	require.True(t, cfg.ExtraData)
	require.Equal(t, []string{"test"}, cfg.IgnoreStrs)
	require.Equal(t, "debug", cfg.Logging.Level)

	// tiger_dir and report_dir default to following dat_dir / tiger_dir.
	require.Equal(t, "/jobs/cutlists", cfg.TigerDir)
	require.Equal(t, "/jobs/cutlists", cfg.ReportDir)

	// Overridden machine setting, with the rest defaulted.
	require.Equal(t, "Pusher", cfg.Tiger.Style)
	require.Equal(t, "English", cfg.Tiger.Unit)
	require.Equal(t, "true", cfg.Tiger.IsOptimized)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "dat_dir: [unclosed")

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadArchiveWithoutDir(t *testing.T) {
	path := writeConfig(t, "archive_files: true\n")

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "archive_dir is empty")
}

func TestLoadBadConcurrency(t *testing.T) {
	path := writeConfig(t, "max_concurrency: -2\n")

	_, err := config.Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "max_concurrency")
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	require.Equal(t, ".", cfg.DatDir)
	require.Equal(t, ".", cfg.TigerDir)
	require.Equal(t, 4, cfg.MaxConcurrency)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, "Setpoint", cfg.Tiger.Style)
	require.False(t, cfg.ArchiveFiles)
}

func TestLoadOrDefaultMissingExplicitPath(t *testing.T) {
	_, err := config.LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
