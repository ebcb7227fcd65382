//go:build unix

package platform

import (
	"io/fs"
	"syscall"
)

// RawMode returns the Unix mode bits of info, read from the underlying
// stat structure when available.
func RawMode(info fs.FileInfo) uint32 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint32(stat.Mode) //nolint:unconvert // uint16 on some platforms
	}
	return synthesize(info.Mode())
}
