package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminforras/analog/internal/adapters/config"
	"github.com/benjaminforras/analog/internal/adapters/logger"
	"github.com/benjaminforras/analog/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte(content), 0o644))
	return dir
}

func TestLoad_FullConfig(t *testing.T) {
	dir := writeConfig(t, `
roots:
  - src/main.mod
  - src/admin.mod
options:
  outDir: build
  sourceMap: true
  liveReload: true
`)
	cfg, err := config.NewLoader(logger.Discard()).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/main.mod", "src/admin.mod"}, cfg.Roots)
	assert.Equal(t, dir, cfg.RootDir)
	assert.Equal(t, "build", cfg.Options.OutDir)
	assert.True(t, cfg.Options.SourceMap)
	assert.True(t, cfg.Options.LiveReload)
}

func TestLoad_OptionDefaults(t *testing.T) {
	dir := writeConfig(t, "roots: [src/main.mod]\n")

	cfg, err := config.NewLoader(logger.Discard()).Load(dir)
	require.NoError(t, err)

	defaults := domain.DefaultOptions()
	assert.Equal(t, defaults.OutDir, cfg.Options.OutDir)
	assert.Equal(t, defaults.DefaultLib, cfg.Options.DefaultLib)
	assert.False(t, cfg.Options.SourceMap)
}

func TestLoad_EmptyRootSet(t *testing.T) {
	dir := writeConfig(t, "roots: []\n")

	_, err := config.NewLoader(logger.Discard()).Load(dir)
	require.ErrorIs(t, err, domain.ErrEmptyRootSet)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.NewLoader(logger.Discard()).Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrNoConfig.Error())
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := writeConfig(t, "roots: [unterminated\n")

	_, err := config.NewLoader(logger.Discard()).Load(dir)
	require.Error(t, err)
}
