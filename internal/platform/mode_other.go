//go:build !unix

package platform

import "io/fs"

// RawMode returns Unix-style mode bits synthesized from info.Mode().
func RawMode(info fs.FileInfo) uint32 {
	return synthesize(info.Mode())
}
