// Package testutil provides fixtures for zov tests: source trees on disk
// and hand-built archives, including malformed ones.
package testutil

import (
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meigma/zov/internal/format"
)

// WriteTree creates files under root. Keys are slash-separated relative paths.
func WriteTree(t testing.TB, root string, files map[string][]byte) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, content, 0o600))
	}
}

// ReadTree returns the regular files under root keyed by slash-separated
// relative path.
func ReadTree(t testing.TB, root string) map[string][]byte {
	t.Helper()
	files := make(map[string][]byte)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = data
		return nil
	})
	require.NoError(t, err)
	return files
}

// RawEntry is an entry written verbatim by BuildArchive. Name is not
// validated, and Offset is written as given.
type RawEntry struct {
	Name       string
	Payload    []byte
	Mode       uint32
	Offset     uint64
	Compressed bool
	Algorithm  uint8
}

// RawArchive describes an archive written by BuildArchive.
type RawArchive struct {
	Magic       []byte
	EntryCount  int // negative uses len(Entries)
	HasPassword bool
	Entries     []RawEntry
}

// BuildArchive encodes a without any validation. Offsets of zero are
// replaced with the entry's real position.
func BuildArchive(t testing.TB, a RawArchive) []byte {
	t.Helper()
	magic := a.Magic
	if magic == nil {
		magic = format.Magic[:]
	}
	count := a.EntryCount
	if count < 0 {
		count = len(a.Entries)
	}

	buf := make([]byte, 0, 1024)
	buf = append(buf, magic...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(count)) //nolint:gosec // test fixture
	buf = binary.BigEndian.AppendUint64(buf, 0)
	pw := byte(0)
	if a.HasPassword {
		pw = 1
	}
	buf = append(buf, pw)

	for _, e := range a.Entries {
		offset := e.Offset
		if offset == 0 {
			offset = uint64(len(buf))
		}
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(e.Name))) //nolint:gosec // test fixture
		buf = append(buf, e.Name...)
		buf = binary.BigEndian.AppendUint64(buf, uint64(len(e.Payload)))
		buf = binary.BigEndian.AppendUint32(buf, e.Mode)
		buf = binary.BigEndian.AppendUint64(buf, offset)
		c := byte(0)
		if e.Compressed {
			c = 1
		}
		buf = append(buf, c, e.Algorithm)
		buf = append(buf, e.Payload...)
	}
	binary.BigEndian.PutUint64(buf[10:], uint64(len(buf)))
	return buf
}

// WriteArchive writes BuildArchive output to a file in a fresh temp dir and
// returns its path.
func WriteArchive(t testing.TB, a RawArchive) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.zov")
	require.NoError(t, os.WriteFile(path, BuildArchive(t, a), 0o600))
	return path
}

// Truncate shortens the file at path by n bytes.
func Truncate(t testing.TB, path string, n int64) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-n))
}
