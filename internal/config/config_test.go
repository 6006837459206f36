package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.MaxCallDepth)
	assert.False(t, cfg.Trace)
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	content := "max_call_depth: 250\ntrace: true\nmodule_search_path:\n  - /opt/quest/modules\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quest.yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.MaxCallDepth)
	assert.True(t, cfg.Trace)
	assert.Equal(t, []string{"/opt/quest/modules"}, cfg.ModuleSearchPath)
}

func TestLoadZeroCallDepthFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quest.yaml"), []byte("max_call_depth: 0\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.MaxCallDepth)
}
