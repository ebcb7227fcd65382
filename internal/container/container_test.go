package container

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/zov/internal/format"
	"github.com/meigma/zov/internal/zovtype"
)

type testEntry struct {
	name    string
	payload []byte
}

func writeContainer(t *testing.T, entries []testEntry, opts ...WriterOption) []byte {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "c.zov"))
	require.NoError(t, err)
	defer f.Close()

	w, err := NewWriter(f, opts...)
	require.NoError(t, err)
	for _, te := range entries {
		e := zovtype.Entry{Name: te.name, Mode: 0o100644}
		require.NoError(t, w.WriteEntry(&e, te.payload))
	}
	_, err = w.Finish()
	require.NoError(t, err)

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	return data
}

func TestWriterReaderRoundTrip(t *testing.T) {
	t.Parallel()

	entries := []testEntry{
		{"a.txt", []byte("alpha")},
		{"dir/empty", nil},
		{"dir/b.bin", bytes.Repeat([]byte{7}, 300)},
	}
	data := writeContainer(t, entries, WithPassword(true))

	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	h := r.Header()
	assert.Equal(t, uint16(3), h.EntryCount)
	assert.Equal(t, uint64(len(data)), h.TotalSize)
	assert.True(t, h.HasPassword)

	offset := uint64(format.HeaderSize)
	for _, want := range entries {
		e, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, want.name, e.Name)
		assert.Equal(t, offset, e.Offset)
		assert.Equal(t, uint64(len(want.payload)), e.Size)
		assert.Equal(t, uint32(0o100644), e.Mode)

		payload, err := r.ReadPayload()
		require.NoError(t, err)
		assert.True(t, bytes.Equal(want.payload, payload))
		offset += format.EntryHeaderSize(len(want.name)) + e.Size
	}

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderNextSkipsUnreadPayload(t *testing.T) {
	t.Parallel()

	data := writeContainer(t, []testEntry{
		{"one", []byte("11111")},
		{"two", []byte("22")},
	})

	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	e, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "two", e.Name)
	payload, err := r.ReadPayload()
	require.NoError(t, err)
	assert.Equal(t, []byte("22"), payload)
}

func TestReaderTruncatedPayload(t *testing.T) {
	t.Parallel()

	data := writeContainer(t, []testEntry{
		{"one", []byte("11111")},
		{"two", bytes.Repeat([]byte("2"), 50)},
		{"three", []byte("3")},
	})
	cut := data[:len(data)-40]

	r, err := NewReader(bytes.NewReader(cut), int64(len(cut)))
	require.NoError(t, err)

	e, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "one", e.Name)

	e, err = r.Next()
	require.ErrorIs(t, err, zovtype.ErrTruncated)
	assert.Equal(t, "two", e.Name)

	_, err = r.Next()
	require.ErrorIs(t, err, zovtype.ErrTruncated)
}

func TestReaderTruncatedEntryHeader(t *testing.T) {
	t.Parallel()

	data := writeContainer(t, []testEntry{{"one", []byte("1")}, {"two", []byte("2")}})
	cut := data[:len(data)-5]

	r, err := NewReader(bytes.NewReader(cut), int64(len(cut)))
	require.NoError(t, err)
	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, zovtype.ErrTruncated)
}

func TestReaderRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := NewReader(bytes.NewReader([]byte("short")), 5)
	require.ErrorIs(t, err, zovtype.ErrTooSmall)

	data := writeContainer(t, nil)
	require.Len(t, data, format.HeaderSize)
	data[3] ^= 0xFF
	_, err = NewReader(bytes.NewReader(data), int64(len(data)))
	require.ErrorIs(t, err, zovtype.ErrBadMagic)
}

func TestWriterEntryLimit(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "c.zov"))
	require.NoError(t, err)
	defer f.Close()

	w, err := NewWriter(f, WithMaxEntries(2))
	require.NoError(t, err)
	for _, name := range []string{"a", "b"} {
		require.NoError(t, w.WriteEntry(&zovtype.Entry{Name: name}, []byte(name)))
	}
	err = w.WriteEntry(&zovtype.Entry{Name: "c"}, []byte("c"))
	require.ErrorIs(t, err, zovtype.ErrTooManyFiles)
	assert.Equal(t, uint16(2), w.Header().EntryCount)
}

func TestWriterRejectsInvalidName(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "c.zov"))
	require.NoError(t, err)
	defer f.Close()

	w, err := NewWriter(f)
	require.NoError(t, err)
	err = w.WriteEntry(&zovtype.Entry{Name: "../x"}, []byte("x"))
	require.ErrorIs(t, err, zovtype.ErrInvalidName)
	assert.Equal(t, uint64(format.HeaderSize), w.Header().TotalSize)
}

func TestOpenAndClose(t *testing.T) {
	t.Parallel()

	data := writeContainer(t, []testEntry{{"a", []byte("a")}})
	path := filepath.Join(t.TempDir(), "a.zov")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	r, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(data)), r.Size())
	require.NoError(t, r.Close())

	_, err = Open(filepath.Join(t.TempDir(), "missing.zov"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReaderContinuesPastUnsafeName(t *testing.T) {
	t.Parallel()

	data := writeContainer(t, []testEntry{{"aa", []byte("1")}, {"ok", []byte("2")}})
	// Rewrite the first name in place to a traversal of the same length.
	copy(data[format.HeaderSize+2:], "..")

	r, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	e, err := r.Next()
	require.ErrorIs(t, err, zovtype.ErrInvalidName)
	assert.Equal(t, "..", e.Name)
	require.NoError(t, r.Err())

	e, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "ok", e.Name)
	payload, err := r.ReadPayload()
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), payload)
}
