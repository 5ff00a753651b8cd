package filesystem

import (
	"io"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys FS, root string) {
	t.Helper()

	dir := filepath.Join(root, "out", "nested")
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	file := filepath.Join(dir, "test.txt")
	content := []byte("hello world")
	require.NoError(t, fsys.WriteFile(file, content, 0644))
	assert.True(t, fsys.Exists(file))

	info, err := fsys.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(content)), info.Size())

	got, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	rc, err := fsys.Open(file)
	require.NoError(t, err)
	streamed, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, content, streamed)

	_, err = fsys.ReadFile(dir)
	assert.ErrorIs(t, err, fs.ErrInvalid)
	_, err = fsys.Open(dir)
	assert.ErrorIs(t, err, fs.ErrInvalid)

	require.NoError(t, fsys.Remove(file))
	assert.False(t, fsys.Exists(file))
	_, err = fsys.Stat(file)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewOS(t *testing.T) {
	exerciseFS(t, NewOS(), t.TempDir())
}

func TestNewMemory(t *testing.T) {
	exerciseFS(t, NewMemory(), "/work")
}
