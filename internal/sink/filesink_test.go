package sink

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSinkCommit(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	dir := filepath.Join(t.TempDir(), "out", "nested")
	s, err := Open(dir, WithClock(func() time.Time { return stamp }))
	require.NoError(t, err)
	defer s.Close()

	w, err := s.Writer("a/b/c.txt", 0o640)
	require.NoError(t, err)
	_, err = w.Write([]byte("content"))
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	path := filepath.Join(dir, "a", "b", "c.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp))
	if runtime.GOOS != "windows" {
		assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Join(dir, "a", "b"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestFileSinkDiscard(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	w, err := s.Writer("x.txt", 0o644)
	require.NoError(t, err)
	_, err = w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, w.Discard())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileSinkRejectsTraversal(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	dir := filepath.Join(base, "out")
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	for _, name := range []string{"../pwned.txt", "/etc/passwd", "a/../../b", "."} {
		_, err := s.Writer(name, 0o644)
		var pathErr *fs.PathError
		require.ErrorAs(t, err, &pathErr, name)
		require.ErrorIs(t, pathErr.Err, fs.ErrInvalid)
	}
	_, err = os.Stat(filepath.Join(base, "pwned.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSinkOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("old"), 0o600))

	keep, err := Open(dir, WithOverwrite(false))
	require.NoError(t, err)
	defer keep.Close()
	assert.False(t, keep.ShouldProcess("a.txt"))
	assert.True(t, keep.ShouldProcess("b.txt"))

	replace, err := Open(dir)
	require.NoError(t, err)
	defer replace.Close()
	assert.True(t, replace.ShouldProcess("a.txt"))

	w, err := replace.Writer("a.txt", 0o600)
	require.NoError(t, err)
	_, err = w.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	data, err := os.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestOpenFailsOnFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := Open(path)
	require.Error(t, err)
}
