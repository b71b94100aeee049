package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := &Config{
		ClassPrefix:    "x-",
		Bidirectional:  true,
		Highlight:      true,
		HighlightStyle: "monokai",
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestConfig_LoadWithEnv(t *testing.T) {
	t.Setenv("DUPLEXMD_CLASS_PREFIX", "env-")
	t.Setenv("DUPLEXMD_BIDIRECTIONAL", "true")
	t.Setenv("DUPLEXMD_HIGHLIGHT", "off")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "env-", cfg.ClassPrefix)
	assert.True(t, cfg.Bidirectional)
	assert.False(t, cfg.Highlight)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, (&Config{ClassPrefix: "md-"}).Validate())
	assert.Error(t, (&Config{ClassPrefix: `bad"prefix`}).Validate())
}

func TestConfig_Options(t *testing.T) {
	cfg := &Config{ClassPrefix: "x-", InlineStyles: true, LazyLinefeeds: true}
	opts := cfg.Options()
	assert.Equal(t, "x-", opts.ClassPrefix)
	assert.True(t, opts.InlineStyles)
	assert.True(t, opts.LazyLinefeeds)
	assert.False(t, opts.Bidirectional)
}

func TestConfig_SavePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yml")
	require.NoError(t, (&Config{}).Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
