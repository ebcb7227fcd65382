package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/zov/internal/zovtype"
)

func TestHeaderLayout(t *testing.T) {
	t.Parallel()

	buf := EncodeHeader(zovtype.Header{EntryCount: 0x0102, TotalSize: 0x030405, HasPassword: true})
	require.Len(t, buf, HeaderSize)
	assert.Equal(t, []byte("ZOVARv02"), buf[:8])
	assert.Equal(t, []byte{0x01, 0x02}, buf[8:10])
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0x03, 0x04, 0x05}, buf[10:18])
	assert.Equal(t, byte(1), buf[18])

	h, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), h.EntryCount)
	assert.Equal(t, uint64(0x030405), h.TotalSize)
	assert.True(t, h.HasPassword)
}

func TestDecodeHeaderErrors(t *testing.T) {
	t.Parallel()

	_, err := DecodeHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, zovtype.ErrTooSmall)

	buf := EncodeHeader(zovtype.Header{})
	buf[0] = 'X'
	_, err = DecodeHeader(buf)
	require.ErrorIs(t, err, zovtype.ErrBadMagic)
}

func TestEntryLayout(t *testing.T) {
	t.Parallel()

	e := zovtype.Entry{
		Name:       "dir/a.txt",
		Size:       42,
		Mode:       0o100755,
		Offset:     HeaderSize,
		Compressed: true,
		Algorithm:  zovtype.AlgorithmRLE,
	}
	buf, err := EncodeEntry(&e)
	require.NoError(t, err)
	require.Len(t, buf, int(EntryHeaderSize(len(e.Name))))
	assert.Equal(t, []byte{0, 9}, buf[:2])
	assert.Equal(t, "dir/a.txt", string(buf[2:11]))

	got, n, err := ReadEntry(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, uint64(len(buf)), n)
	assert.Equal(t, e, got)
}

func TestReadEntryUncompressedClearsAlgorithm(t *testing.T) {
	t.Parallel()

	buf, err := EncodeEntry(&zovtype.Entry{Name: "a", Algorithm: zovtype.AlgorithmNone})
	require.NoError(t, err)
	buf[len(buf)-1] = byte(zovtype.AlgorithmZstd)

	got, _, err := ReadEntry(bytes.NewReader(buf))
	require.NoError(t, err)
	assert.False(t, got.Compressed)
	assert.Equal(t, zovtype.AlgorithmNone, got.Algorithm)
}

func TestReadEntryTruncated(t *testing.T) {
	t.Parallel()

	buf, err := EncodeEntry(&zovtype.Entry{Name: "file.txt", Size: 1})
	require.NoError(t, err)

	for _, cut := range []int{0, 1, 2, 5, len(buf) - 1} {
		_, _, err := ReadEntry(bytes.NewReader(buf[:cut]))
		require.ErrorIs(t, err, zovtype.ErrTruncated, "cut at %d", cut)
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want error
	}{
		{"a.txt", nil},
		{"dir/sub/a.txt", nil},
		{"", zovtype.ErrInvalidName},
		{".", zovtype.ErrInvalidName},
		{"/etc/passwd", zovtype.ErrInvalidName},
		{"../escape", zovtype.ErrInvalidName},
		{"a/../b", zovtype.ErrInvalidName},
		{"a\x00b", zovtype.ErrInvalidName},
		{strings.Repeat("a", MaxNameLen), nil},
		{strings.Repeat("a", MaxNameLen+1), zovtype.ErrNameTooLong},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if tt.want == nil {
			assert.NoError(t, err, "name %q", tt.name)
			continue
		}
		assert.ErrorIs(t, err, tt.want, "name %q", tt.name)
	}
}

func TestReadEntryRejectsHostileName(t *testing.T) {
	t.Parallel()

	buf, err := EncodeEntry(&zovtype.Entry{Name: "ab/cd"})
	require.NoError(t, err)
	copy(buf[2:], "../cd")

	_, _, err = ReadEntry(bytes.NewReader(buf))
	require.ErrorIs(t, err, zovtype.ErrInvalidName)
}
