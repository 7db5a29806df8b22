package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pensvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"content_dir: /tmp/pensvm-content\n"+
			"export_dir: /tmp/pensvm-exports\n"+
			"margin_ratio: 0.3\n"+
			"log_mode: prod\n"), 0644))
	t.Setenv("PENSVM_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pensvm-content", cfg.ContentDir)
	assert.Equal(t, "/tmp/pensvm-exports", cfg.ExportDir)
	assert.Equal(t, 0.3, cfg.MarginRatio)
	assert.Equal(t, "prod", cfg.LogMode)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pensvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("content_dir: /tmp/from-file\n"), 0644))
	t.Setenv("PENSVM_CONFIG", path)
	t.Setenv("PENSVM_CONTENT_DIR", "/tmp/from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env", cfg.ContentDir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("PENSVM_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PENSVM_CONFIG", "")
	t.Setenv("PENSVM_CONTENT_DIR", "/tmp/pensvm-test")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pensvm-test", cfg.ContentDir)
	assert.NotEmpty(t, cfg.ExportDir)
	assert.Equal(t, 0.25, cfg.MarginRatio)
	assert.Equal(t, "dev", cfg.LogMode)
}

func TestApplyDefaultsClampsRatio(t *testing.T) {
	for _, ratio := range []float64{-1, 0, 1, 3} {
		cfg := Config{ContentDir: "/tmp/a", ExportDir: "/tmp/b", MarginRatio: ratio}
		require.NoError(t, cfg.applyDefaults())
		assert.Equal(t, 0.25, cfg.MarginRatio, "ratio %v", ratio)
	}
}
