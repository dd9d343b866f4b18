package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/config"
)

func TestLoadMissingGivesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := config.Default()
	require.NoError(t, cfg.Set("theme", "dark"))
	require.NoError(t, cfg.Set("language", "it"))
	require.NoError(t, cfg.Set("check_for_updates", "false"))
	require.NoError(t, cfg.Set("python_path", "/opt/python/bin/python3"))
	require.NoError(t, cfg.SaveFile(path))

	loaded, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"language": "it"}`), 0o644))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "it", cfg.Language)
	assert.Equal(t, "system", cfg.Theme)
	assert.True(t, cfg.CheckForUpdates)
}

func TestGetSet(t *testing.T) {
	t.Parallel()
	cfg := config.Default()

	for _, key := range config.Keys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, "Get(%q)", key)
	}

	_, err := cfg.Get("no_such_key")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
	err = cfg.Set("no_such_key", "x")
	assert.ErrorIs(t, err, config.ErrUnknownKey)

	assert.Error(t, cfg.Set("theme", "plaid"))
	assert.Error(t, cfg.Set("check_for_updates", "maybe"))
	assert.Error(t, cfg.Set("language", ""))

	require.NoError(t, cfg.Set("check_for_updates", "true"))
	val, err := cfg.Get("check_for_updates")
	require.NoError(t, err)
	assert.Equal(t, "true", val)
}

func TestCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := config.LoadFile(path)
	assert.Error(t, err)
}

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, config.WriteFileAtomic(path, []byte("one"), 0o644))
	require.NoError(t, config.WriteFileAtomic(path, []byte("two"), 0o644))

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(bs))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}
