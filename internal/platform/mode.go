// Package platform converts between fs.FileMode and the raw Unix mode bits
// stored in entry headers.
package platform

import "io/fs"

// Unix mode constants as stored in containers.
const (
	modeTypeMask = 0o170000
	modeRegular  = 0o100000
	modeDir      = 0o040000
	modeSymlink  = 0o120000
	modeSetuid   = 0o4000
	modeSetgid   = 0o2000
	modeSticky   = 0o1000
)

// FileMode converts raw Unix mode bits to the permission and special bits
// of an fs.FileMode suitable for chmod.
func FileMode(raw uint32) fs.FileMode {
	m := fs.FileMode(raw & 0o777)
	if raw&modeSetuid != 0 {
		m |= fs.ModeSetuid
	}
	if raw&modeSetgid != 0 {
		m |= fs.ModeSetgid
	}
	if raw&modeSticky != 0 {
		m |= fs.ModeSticky
	}
	return m
}

// synthesize builds raw Unix mode bits from an fs.FileMode.
func synthesize(mode fs.FileMode) uint32 {
	raw := uint32(mode.Perm())
	switch {
	case mode.IsDir():
		raw |= modeDir
	case mode&fs.ModeSymlink != 0:
		raw |= modeSymlink
	case mode.IsRegular():
		raw |= modeRegular
	}
	if mode&fs.ModeSetuid != 0 {
		raw |= modeSetuid
	}
	if mode&fs.ModeSetgid != 0 {
		raw |= modeSetgid
	}
	if mode&fs.ModeSticky != 0 {
		raw |= modeSticky
	}
	return raw
}

// IsRegular reports whether raw describes a regular file. Modes without
// type bits are treated as regular.
func IsRegular(raw uint32) bool {
	t := raw & modeTypeMask
	return t == 0 || t == modeRegular
}
