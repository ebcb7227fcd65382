package zov

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meigma/zov/internal/codec"
	"github.com/meigma/zov/internal/container"
	"github.com/meigma/zov/internal/platform"
	"github.com/meigma/zov/internal/sink"
)

// ExtractStats summarizes an extraction.
type ExtractStats struct {
	// Expected is the entry count declared in the archive header.
	Expected int

	// Extracted is the number of entries written with their original content.
	Extracted int

	// Kept is the number of entries left alone because the file existed
	// and overwriting was disabled.
	Kept int

	// Skipped is the number of entries not written because they exceeded
	// the size ceiling or did not describe a regular file.
	Skipped int

	// Fallbacks is the number of entries that failed to decode and were
	// written with their stored bytes instead.
	Fallbacks int

	// Bytes is the total size of the files written.
	Bytes uint64

	// Failures lists every entry that was not extracted cleanly.
	Failures []*EntryError
}

// Extract unpacks the archive at archivePath into outputDir.
//
// The header is validated before anything is written; a bad magic, short
// file, or missing password fails without side effects. outputDir and any
// parent directories of entries are created as needed. Each file receives
// its stored permission bits and the current time as its modification time.
//
// Problems with individual entries are recorded in ExtractStats.Failures
// and extraction continues. An entry whose header or payload cannot be read
// stops processing of the entries after it. When not every entry was
// extracted, Extract returns the stats together with a *PartialError.
func Extract(ctx context.Context, archivePath, outputDir string, opts ...ExtractOption) (*ExtractStats, error) {
	cfg := extractConfig{overwrite: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxEntrySize == 0 {
		cfg.maxEntrySize = DefaultMaxEntrySize
	}

	r, err := container.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	hdr := r.Header()
	if hdr.HasPassword && cfg.password == "" {
		return nil, ErrPasswordRequired
	}

	s, err := sink.Open(outputDir, sink.WithOverwrite(cfg.overwrite))
	if err != nil {
		return nil, err
	}
	defer s.Close()

	x := &extractor{cfg: cfg, r: r, sink: s, stats: &ExtractStats{Expected: int(hdr.EntryCount)}}
	x.log().Info("extracting archive", "archive", archivePath, "output", outputDir, "entries", hdr.EntryCount)
	if err := x.run(ctx); err != nil {
		return x.stats, err
	}

	st := x.stats
	x.log().Info("extraction finished",
		"extracted", st.Extracted,
		"expected", st.Expected,
		"skipped", st.Skipped,
		"fallbacks", st.Fallbacks,
		"failures", len(st.Failures))
	if st.Extracted+st.Kept != st.Expected {
		return st, &PartialError{Extracted: st.Extracted, Expected: st.Expected}
	}
	return st, nil
}

// extractor holds state for a single extraction.
type extractor struct {
	cfg   extractConfig
	r     *container.Reader
	sink  *sink.FileSink
	stats *ExtractStats
}

// log returns the logger, falling back to a discard logger if nil.
func (x *extractor) log() *slog.Logger {
	if x.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return x.cfg.logger
}

func (x *extractor) fail(index int, op, name string, err error) {
	x.log().Warn("entry not extracted", "index", index, "path", name, "op", op, "error", err)
	x.stats.Failures = append(x.stats.Failures, &EntryError{Index: index, Op: op, Path: name, Err: err})
}

// run processes entries until the declared count is reached or the stream
// becomes unreadable. Only context cancellation is returned as an error.
func (x *extractor) run(ctx context.Context) error {
	for i := range x.stats.Expected {
		if err := ctx.Err(); err != nil {
			return err
		}

		e, err := x.r.Next()
		if err != nil {
			x.fail(i, "read", e.Name, err)
			if x.r.Err() == nil {
				continue
			}
			if rest := x.stats.Expected - i - 1; rest > 0 {
				x.log().Warn("stopping extraction", "unreadable_entries", rest)
			}
			return nil
		}

		if !x.sink.ShouldProcess(e.Name) {
			x.log().Debug("kept existing file", "path", e.Name)
			x.stats.Kept++
			continue
		}
		if !platform.IsRegular(e.Mode) {
			x.skip(i, &e, fmt.Errorf("%w: mode %o", ErrNotRegular, e.Mode))
			continue
		}
		if e.Size > x.cfg.maxEntrySize {
			x.skip(i, &e, fmt.Errorf("%w: %d bytes", ErrEntryTooLarge, e.Size))
			continue
		}

		payload, err := x.r.ReadPayload()
		if err != nil {
			x.fail(i, "read", e.Name, err)
			return nil
		}

		data, res := x.decode(i, &e, payload)
		if res == decodeSkipped {
			continue
		}
		if err := x.write(&e, data); err != nil {
			x.fail(i, "write", e.Name, err)
			continue
		}
		if res == decodeOK {
			x.stats.Extracted++
		}
		x.stats.Bytes += uint64(len(data))
		report(x.cfg.progress, ProgressEvent{
			Stage:      StageExtracting,
			Path:       e.Name,
			BytesDone:  x.stats.Bytes,
			FilesDone:  x.stats.Extracted,
			FilesTotal: x.stats.Expected,
		})
	}
	return nil
}

// skip passes over an entry that will not be written.
func (x *extractor) skip(index int, e *Entry, reason error) {
	x.stats.Skipped++
	x.fail(index, "skip", e.Name, reason)
}

type decodeResult uint8

const (
	decodeOK decodeResult = iota
	decodeFallback
	decodeSkipped
)

// decode returns the bytes to write for e. A payload that fails to decode
// is returned unchanged and counted as a fallback.
func (x *extractor) decode(index int, e *Entry, payload []byte) ([]byte, decodeResult) {
	if !e.Compressed {
		return payload, decodeOK
	}
	c, err := codec.ForAlgorithm(e.Algorithm)
	if err == nil {
		out, decErr := c.Decode(payload, x.cfg.maxEntrySize)
		if decErr == nil {
			return out, decodeOK
		}
		if errors.Is(decErr, codec.ErrLimitExceeded) {
			x.skip(index, e, fmt.Errorf("%w: %w", ErrEntryTooLarge, decErr))
			return nil, decodeSkipped
		}
		err = decErr
	}
	x.stats.Fallbacks++
	x.fail(index, "decode", e.Name, fmt.Errorf("%w: %w; wrote stored bytes", ErrDecompression, err))
	return payload, decodeFallback
}

func (x *extractor) write(e *Entry, data []byte) error {
	w, err := x.sink.Writer(e.Name, platform.FileMode(e.Mode))
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Discard() //nolint:errcheck // best-effort cleanup
		return err
	}
	return w.Commit()
}
