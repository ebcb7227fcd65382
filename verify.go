package zov

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/meigma/zov/internal/codec"
	"github.com/meigma/zov/internal/container"
	"github.com/meigma/zov/internal/format"
)

// OffsetMismatch records an entry whose stored offset differs from its
// actual position in the archive.
type OffsetMismatch struct {
	Index    int
	Name     string
	Stored   uint64
	Computed uint64
}

// VerifyReport is the result of a structural check of an archive.
type VerifyReport struct {
	// Path is the archive path as given to Verify.
	Path string

	// Header is the archive header.
	Header Header

	// Expected is the entry count declared in the header.
	Expected int

	// Valid is the number of entries readable to their declared size
	// (and decodable, when decoding was requested).
	Valid int

	// End is the position after the last readable entry.
	End uint64

	// Mismatches lists entries whose stored offset is wrong. They do not
	// affect Passed.
	Mismatches []OffsetMismatch

	// Failures lists entries that failed the check.
	Failures []*EntryError
}

// Passed reports whether every declared entry was valid.
func (r *VerifyReport) Passed() bool {
	return r.Valid == r.Expected
}

// SizeMatches reports whether the header's total size agrees with the end
// of the last entry.
func (r *VerifyReport) SizeMatches() bool {
	return r.Header.TotalSize == r.End
}

// verifyConfig holds configuration for verification.
type verifyConfig struct {
	decode       bool
	maxEntrySize uint64
	logger       *slog.Logger
	progress     ProgressFunc
}

// VerifyOption configures verification.
type VerifyOption func(*verifyConfig)

// VerifyWithDecode also decodes every compressed payload and reports
// entries that fail to decode.
func VerifyWithDecode(decode bool) VerifyOption {
	return func(cfg *verifyConfig) {
		cfg.decode = decode
	}
}

// VerifyWithMaxEntrySize bounds the decoded size checked per entry.
// Zero uses DefaultMaxEntrySize.
func VerifyWithMaxEntrySize(n uint64) VerifyOption {
	return func(cfg *verifyConfig) {
		cfg.maxEntrySize = n
	}
}

// VerifyWithLogger sets the logger for verification.
func VerifyWithLogger(logger *slog.Logger) VerifyOption {
	return func(cfg *verifyConfig) {
		cfg.logger = logger
	}
}

// VerifyWithProgress sets a callback invoked after each entry is checked.
func VerifyWithProgress(fn ProgressFunc) VerifyOption {
	return func(cfg *verifyConfig) {
		cfg.progress = fn
	}
}

// Verify walks the archive at archivePath and checks that every declared
// entry can be read to its declared size.
//
// The expected position of each entry is recomputed from the header size
// and the sizes of the entries before it; disagreement with the stored
// offset is reported in Mismatches but does not fail verification. An
// unreadable entry header stops the walk.
func Verify(archivePath string, opts ...VerifyOption) (*VerifyReport, error) {
	cfg := verifyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxEntrySize == 0 {
		cfg.maxEntrySize = DefaultMaxEntrySize
	}
	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r, err := container.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	hdr := r.Header()
	rep := &VerifyReport{Path: archivePath, Header: hdr, Expected: int(hdr.EntryCount)}
	fail := func(index int, op, name string, err error) {
		logger.Warn("entry failed verification", "index", index, "path", name, "op", op, "error", err)
		rep.Failures = append(rep.Failures, &EntryError{Index: index, Op: op, Path: name, Err: err})
	}

	offset := uint64(format.HeaderSize)
	for i := range rep.Expected {
		e, err := r.Next()
		if err != nil {
			fail(i, "read", e.Name, err)
			if r.Err() != nil {
				break
			}
			offset += format.EntryHeaderSize(len(e.Name)) + e.Size
			rep.End = offset
			continue
		}
		if e.Offset != offset {
			logger.Warn("offset mismatch", "index", i, "path", e.Name, "stored", e.Offset, "computed", offset)
			rep.Mismatches = append(rep.Mismatches, OffsetMismatch{Index: i, Name: e.Name, Stored: e.Offset, Computed: offset})
		}
		offset += format.EntryHeaderSize(len(e.Name)) + e.Size
		rep.End = offset

		if cfg.decode && e.Compressed {
			payload, err := r.ReadPayload()
			if err != nil {
				fail(i, "read", e.Name, err)
				break
			}
			if err := checkDecode(&e, payload, cfg.maxEntrySize); err != nil {
				fail(i, "decode", e.Name, err)
				continue
			}
		} else if err := r.SkipPayload(); err != nil {
			fail(i, "read", e.Name, err)
			break
		}

		rep.Valid++
		report(cfg.progress, ProgressEvent{Stage: StageVerifying, Path: e.Name, FilesDone: rep.Valid, FilesTotal: rep.Expected})
	}

	if rep.Passed() {
		logger.Info("archive verified", "archive", archivePath, "entries", rep.Valid)
	} else {
		logger.Warn("archive verification failed", "archive", archivePath, "valid", rep.Valid, "expected", rep.Expected)
	}
	return rep, nil
}

// checkDecode decodes payload and discards the result. Entries too large to
// decode within limit are not treated as failures.
func checkDecode(e *Entry, payload []byte, limit uint64) error {
	c, err := codec.ForAlgorithm(e.Algorithm)
	if err != nil {
		return err
	}
	if _, err := c.Decode(payload, limit); err != nil && !errors.Is(err, codec.ErrLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrDecompression, err)
	}
	return nil
}
