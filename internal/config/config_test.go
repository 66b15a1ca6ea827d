package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvSourceDir, EnvOutputDir, EnvArchiveDir, EnvLogLevel, EnvLogFile} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "xlcut.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMainConfig_NotFound(t *testing.T) {
	clearEnv(t)

	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
}

func TestLoadMainConfig_ValuesAndDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `
source_dir: `+filepath.Join(dir, "in")+`
output_dir: `+filepath.Join(dir, "out")+`
log_level: DEBUG
write_error_log: false
partition:
  discriminant: "@kind"
workbook:
  max_width: 80
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "in"), cfg.SourceDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.ErrorLogEnabled())
	assert.Equal(t, "@kind", cfg.Partition.Discriminant)
	assert.Equal(t, "data", cfg.Partition.DefaultGroup)
	assert.Equal(t, "_source_file", cfg.Partition.SourceColumn)
	assert.Equal(t, 80, cfg.Workbook.MaxWidth)
	assert.Equal(t, 100, cfg.Workbook.WidthSampleRows)
	assert.Equal(t, "Items Sold", cfg.Workbook.ItemsSheet)
	assert.Equal(t, "*.xml", cfg.InputPattern)
	assert.Equal(t, "export_{timestamp}.xlsx", cfg.OutputNameFormat)

	assert.DirExists(t, filepath.Join(dir, "in"))
	assert.DirExists(t, filepath.Join(dir, "out"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvSourceDir, filepath.Join(dir, "src"))
	t.Setenv(EnvOutputDir, filepath.Join(dir, "dst"))

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "src"), cfg.SourceDir)
	assert.Equal(t, filepath.Join(dir, "dst"), cfg.OutputDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.ErrorLogEnabled())
	assert.Equal(t, "", cfg.ArchiveDir)
	assert.DirExists(t, filepath.Join(dir, "src"))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `
source_dir: `+filepath.Join(dir, "from-file")+`
output_dir: `+filepath.Join(dir, "out")+`
log_level: info
`)
	t.Setenv(EnvSourceDir, filepath.Join(dir, "from-env"))
	t.Setenv(EnvArchiveDir, filepath.Join(dir, "archive"))
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFile, filepath.Join(dir, "logs", "xlcut.log"))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "from-env"), cfg.SourceDir)
	assert.Equal(t, filepath.Join(dir, "archive"), cfg.ArchiveDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.DirExists(t, filepath.Join(dir, "archive"))
	assert.DirExists(t, filepath.Join(dir, "logs"))
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "source_dir: [unclosed"},
		{"bad log level", "log_level: loud"},
		{"bad pattern", "input_pattern: \"[\""},
		{"negative width", "workbook:\n  max_width: -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.body+"\nsource_dir: "+filepath.Join(dir, "s")+"\noutput_dir: "+filepath.Join(dir, "o")+"\n")
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadWithOverrides_OnlyUsedDirsCreated(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `
source_dir: `+filepath.Join(dir, "file-src")+`
output_dir: `+filepath.Join(dir, "file-out")+`
`)

	cfg, err := LoadWithOverrides(path, Overrides{
		SourceDir: filepath.Join(dir, "flag-src"),
		OutputDir: filepath.Join(dir, "flag-out"),
		LogLevel:  "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "flag-src"), cfg.SourceDir)
	assert.Equal(t, filepath.Join(dir, "flag-out"), cfg.OutputDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.DirExists(t, filepath.Join(dir, "flag-src"))
	assert.DirExists(t, filepath.Join(dir, "flag-out"))
	assert.NoDirExists(t, filepath.Join(dir, "file-src"))
	assert.NoDirExists(t, filepath.Join(dir, "file-out"))
}

func TestLoadWithOverrides_BeatEnvironment(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv(EnvSourceDir, filepath.Join(dir, "env-src"))
	t.Setenv(EnvOutputDir, filepath.Join(dir, "env-out"))

	cfg, err := LoadWithOverrides(filepath.Join(dir, "missing.yaml"), Overrides{SourceDir: filepath.Join(dir, "flag-src")})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "flag-src"), cfg.SourceDir)
	assert.Equal(t, filepath.Join(dir, "env-out"), cfg.OutputDir)
	assert.NoDirExists(t, filepath.Join(dir, "env-src"))
}
