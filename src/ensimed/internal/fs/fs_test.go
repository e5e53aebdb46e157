package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp")
	fs := New()
	dir, err := fs.UserCacheDir()
	assert.NoError(t, err)
	assert.NotEmpty(t, dir)
}

func TestMkdirAll(t *testing.T) {
	dir := t.TempDir()
	fs := New()
	err := fs.MkdirAll(filepath.Join(dir, "foo/bar"))
	assert.NoError(t, err)

	exists, err := fs.DirExists(filepath.Join(dir, "foo/bar"))
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestDirExists(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		dir := t.TempDir()
		result, err := New().DirExists(dir)
		assert.NoError(t, err)
		assert.True(t, result)
	})

	t.Run("does not exist", func(t *testing.T) {
		dir := t.TempDir()
		result, err := New().DirExists(dir + "foo")
		assert.NoError(t, err)
		assert.False(t, result)
	})
}

func TestFileReadWrite(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "a.go")
	fs := New()

	exists, err := fs.FileExists(name)
	assert.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, fs.WriteFile(name, []byte("package a\n")))
	exists, err = fs.FileExists(name)
	assert.NoError(t, err)
	assert.True(t, exists)

	contents, err := fs.ReadFile(name)
	assert.NoError(t, err)
	assert.Equal(t, "package a\n", string(contents))

	exists, err = fs.FileExists(dir)
	assert.NoError(t, err)
	assert.False(t, exists, "directories are not files")

	require.NoError(t, fs.Remove(name))
	_, err = os.Stat(name)
	assert.True(t, os.IsNotExist(err))
}

func TestWalkFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.go", "sub/b.go", "sub/c.txt", ".git/d.go"} {
		full := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}

	found, err := New().WalkFiles(dir, ".go")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.go"), filepath.Join(dir, "sub/b.go")}, found)

	all, err := New().WalkFiles(dir)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = New().WalkFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
