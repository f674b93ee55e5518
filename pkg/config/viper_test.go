package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TYPEDID_LOG_LEVEL", "debug")

	v, err := Load(t.TempDir(), "config")
	require.NoError(t, err)
	assert.Equal(t, "debug", v.GetString("log.level"))
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "idgen.yaml"), []byte("snowflake:\n  machine_id: 7\n"), 0o644))

	v, err := Load(dir, "idgen")
	require.NoError(t, err)
	assert.Equal(t, 7, v.GetInt("snowflake.machine_id"))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nanoid:\n  size: 10\n"), 0o644))

	v, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, v.GetInt("nanoid.size"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unterminated\n"), 0o644))

	_, err := Load(dir, "config")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
