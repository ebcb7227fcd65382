package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  uint32
		want fs.FileMode
	}{
		{0o100644, 0o644},
		{0o100755, 0o755},
		{0o104755, 0o755 | fs.ModeSetuid},
		{0o102750, 0o750 | fs.ModeSetgid},
		{0o041777, 0o777 | fs.ModeSticky},
		{0o600, 0o600},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileMode(tt.raw), "raw %o", tt.raw)
	}
}

func TestSynthesizeRoundTrip(t *testing.T) {
	t.Parallel()

	modes := []fs.FileMode{0o644, 0o755 | fs.ModeSetuid, 0o777 | fs.ModeSticky, 0o750 | fs.ModeSetgid}
	for _, m := range modes {
		raw := synthesize(m)
		assert.True(t, IsRegular(raw))
		assert.Equal(t, m&(fs.ModePerm|fs.ModeSetuid|fs.ModeSetgid|fs.ModeSticky), FileMode(raw))
	}
	assert.False(t, IsRegular(synthesize(fs.ModeDir|0o755)))
}

func TestRawModeRegularFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.NoError(t, os.Chmod(path, 0o640))
	info, err := os.Stat(path)
	require.NoError(t, err)

	raw := RawMode(info)
	assert.True(t, IsRegular(raw))
	if runtime.GOOS != "windows" {
		assert.Equal(t, uint32(0o640), raw&0o7777)
	}
}
