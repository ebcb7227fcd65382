package zov

import "log/slog"

// DefaultMaxEntrySize is the largest entry payload, stored or decoded,
// that Extract writes. Larger entries are skipped.
const DefaultMaxEntrySize = 100 << 20

// extractConfig holds configuration for extraction.
type extractConfig struct {
	password     string
	maxEntrySize uint64
	overwrite    bool
	logger       *slog.Logger
	progress     ProgressFunc
}

// ExtractOption configures extraction.
type ExtractOption func(*extractConfig)

// ExtractWithPassword supplies the password for a protected archive.
// Any non-empty value is accepted.
func ExtractWithPassword(password string) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.password = password
	}
}

// ExtractWithMaxEntrySize sets the per-entry ceiling in bytes.
// Zero uses DefaultMaxEntrySize.
func ExtractWithMaxEntrySize(n uint64) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.maxEntrySize = n
	}
}

// ExtractWithOverwrite controls whether existing files are replaced.
// When disabled, existing files are left untouched and counted as kept.
// Overwriting is enabled by default.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.overwrite = overwrite
	}
}

// ExtractWithLogger sets the logger for extraction.
func ExtractWithLogger(logger *slog.Logger) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.logger = logger
	}
}

// ExtractWithProgress sets a callback invoked after each entry is written.
func ExtractWithProgress(fn ProgressFunc) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.progress = fn
	}
}
