package zov

import (
	"log/slog"

	"github.com/meigma/zov/internal/write"
)

// DefaultMinCompressSize is the smallest file size considered for
// compression. Files of 100 bytes or fewer are stored as-is.
const DefaultMinCompressSize = 101

// SkipCompressionFunc returns true when a file should be stored uncompressed.
// It is called once per file and should be inexpensive.
type SkipCompressionFunc = write.SkipCompressionFunc

// DefaultSkipCompression returns a SkipCompressionFunc that skips files
// smaller than minSize and known already-compressed extensions.
var DefaultSkipCompression = write.DefaultSkipCompression

// createConfig holds configuration for archive creation.
type createConfig struct {
	algorithm       Algorithm
	skipCompression []SkipCompressionFunc
	skipSet         bool
	password        string
	maxFiles        int
	logger          *slog.Logger
	progress        ProgressFunc
}

// CreateOption configures archive creation.
type CreateOption func(*createConfig)

// CreateWithCodec sets the payload codec. The default is AlgorithmRLE.
// Use AlgorithmNone to store every file uncompressed.
func CreateWithCodec(a Algorithm) CreateOption {
	return func(cfg *createConfig) {
		cfg.algorithm = a
	}
}

// CreateWithSkipCompression replaces the default skip predicates.
// If any predicate returns true, compression is skipped for that file.
// Call with no arguments to consider every file for compression.
func CreateWithSkipCompression(fns ...SkipCompressionFunc) CreateOption {
	return func(cfg *createConfig) {
		cfg.skipCompression = append(cfg.skipCompression, fns...)
		cfg.skipSet = true
	}
}

// CreateWithPassword marks the archive as password protected.
// The password itself is not stored and nothing is encrypted.
func CreateWithPassword(password string) CreateOption {
	return func(cfg *createConfig) {
		cfg.password = password
	}
}

// CreateWithMaxFiles limits the number of files included in the archive.
// Zero or values above MaxEntries use MaxEntries.
func CreateWithMaxFiles(n int) CreateOption {
	return func(cfg *createConfig) {
		cfg.maxFiles = n
	}
}

// CreateWithLogger sets the logger for archive creation.
func CreateWithLogger(logger *slog.Logger) CreateOption {
	return func(cfg *createConfig) {
		cfg.logger = logger
	}
}

// CreateWithProgress sets a callback invoked after each file is written.
func CreateWithProgress(fn ProgressFunc) CreateOption {
	return func(cfg *createConfig) {
		cfg.progress = fn
	}
}
