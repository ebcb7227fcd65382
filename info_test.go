package zov

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/zov/internal/testutil"
)

func TestInfo(t *testing.T) {
	t.Parallel()

	archive, cstats := createTestArchive(t, sampleTree(), CreateWithPassword("pw"))
	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	l, err := List(archive)
	require.NoError(t, err)

	info, err := Info(archive)
	require.NoError(t, err)
	assert.Equal(t, uint64(len(data)), info.Size)
	assert.Equal(t, 5, info.EntryCount)
	assert.Equal(t, cstats.Header.TotalSize, info.TotalSize)
	assert.True(t, info.PasswordProtected)
	assert.Equal(t, cstats.Compressed, info.CompressedEntries)
	assert.Equal(t, l.StoredBytes(), info.PayloadBytes)
	assert.True(t, info.Readable)
	assert.Equal(t, digest.FromBytes(data), info.Digest)

	want := float64(len(data)-int(info.PayloadBytes)) / float64(len(data)) * 100
	assert.InDelta(t, want, info.OverheadPercent, 1e-9)
}

func TestInfoWriters(t *testing.T) {
	t.Parallel()

	archive, _ := createTestArchive(t, sampleTree())
	info, err := Info(archive)
	require.NoError(t, err)

	var text bytes.Buffer
	require.NoError(t, info.WriteText(&text))
	assert.Contains(t, text.String(), "File count: 5\n")
	assert.Contains(t, text.String(), "Password protected: no\n")
	assert.Contains(t, text.String(), info.Digest.String())
	assert.NotContains(t, text.String(), "Warning")

	var js bytes.Buffer
	require.NoError(t, info.WriteJSON(&js))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.InDelta(t, 5, decoded["entryCount"], 0)
	assert.Equal(t, info.Digest.String(), decoded["digest"])
	assert.Equal(t, true, decoded["readable"])
}

func TestInfoTruncated(t *testing.T) {
	t.Parallel()

	archive, _ := createTestArchive(t, sampleTree())
	testutil.Truncate(t, archive, 5)

	info, err := Info(archive)
	require.NoError(t, err)
	assert.False(t, info.Readable)

	var text bytes.Buffer
	require.NoError(t, info.WriteText(&text))
	assert.Contains(t, text.String(), "Warning: archive is truncated or corrupt")
}

func TestInfoBadMagic(t *testing.T) {
	t.Parallel()

	archive := testutil.WriteArchive(t, testutil.RawArchive{Magic: []byte("ZOVARv01"), EntryCount: -1})
	_, err := Info(archive)
	require.ErrorIs(t, err, ErrBadMagic)
}
