package system_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/speakeasy-api/lintconfig/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile_OSPath_Success(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lint.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: {no-var: error}\n"), 0o644))

	data, err := system.ReadFile(&system.FileSystem{}, path)
	require.NoError(t, err, "should read an absolute OS path")
	assert.Equal(t, "rules: {no-var: error}\n", string(data))
}

func TestReadFile_MapFS_Success(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{"configs/lint.yaml": {Data: []byte("ignores: [dist/]\n")}}

	data, err := system.ReadFile(fsys, "configs/lint.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ignores: [dist/]\n", string(data))
}

func TestReadFile_Missing_Error(t *testing.T) {
	t.Parallel()

	_, err := system.ReadFile(&system.FileSystem{}, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileSystem_WriteFile_CreatesDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "resolved", "config.yaml")

	fsys := &system.FileSystem{}
	require.NoError(t, fsys.WriteFile(path, []byte("rules: {}\n"), 0o644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o644), info.Mode().Perm())

	data, err := system.ReadFile(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "rules: {}\n", string(data))
}

func TestFileSystem_WriteFile_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"old":true}`), 0o644))

	fsys := &system.FileSystem{}
	require.NoError(t, fsys.WriteFile(path, []byte(`{}`), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
