// Package write holds the per-file policy applied while building containers.
package write

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// SkipCompressionFunc returns true when a file should be stored uncompressed.
// It is called once per file and should be inexpensive.
type SkipCompressionFunc func(path string, info fs.FileInfo) bool

// DefaultSkipCompression returns a SkipCompressionFunc that skips files
// smaller than minSize and known already-compressed extensions.
func DefaultSkipCompression(minSize int64) SkipCompressionFunc {
	return func(path string, info fs.FileInfo) bool {
		if info != nil && minSize > 0 && info.Size() < minSize {
			return true
		}
		return CompressedExt(path)
	}
}

// CompressedExt reports whether path has an extension of an already
// compressed format. The match is case-insensitive.
func CompressedExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := defaultSkipCompressionExts[ext]
	return ok
}

// ShouldSkip checks if any predicate returns true for the given file.
func ShouldSkip(path string, info fs.FileInfo, predicates []SkipCompressionFunc) bool {
	for _, fn := range predicates {
		if fn == nil {
			continue
		}
		if fn(path, info) {
			return true
		}
	}
	return false
}

var defaultSkipCompressionExts = map[string]struct{}{
	".7z":    {},
	".aac":   {},
	".avi":   {},
	".avif":  {},
	".bmp":   {},
	".br":    {},
	".bz2":   {},
	".doc":   {},
	".docx":  {},
	".flac":  {},
	".gif":   {},
	".gz":    {},
	".heic":  {},
	".ico":   {},
	".jpeg":  {},
	".jpg":   {},
	".lz4":   {},
	".m4v":   {},
	".mkv":   {},
	".mov":   {},
	".mp3":   {},
	".mp4":   {},
	".ogg":   {},
	".opus":  {},
	".pdf":   {},
	".png":   {},
	".ppt":   {},
	".rar":   {},
	".tar":   {},
	".tgz":   {},
	".tiff":  {},
	".wav":   {},
	".webm":  {},
	".webp":  {},
	".woff":  {},
	".woff2": {},
	".xls":   {},
	".xz":    {},
	".zip":   {},
	".zov":   {},
	".zst":   {},
}
