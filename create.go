package zov

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meigma/zov/internal/codec"
	"github.com/meigma/zov/internal/container"
	"github.com/meigma/zov/internal/format"
	"github.com/meigma/zov/internal/platform"
	"github.com/meigma/zov/internal/walk"
	"github.com/meigma/zov/internal/write"
)

// CreateStats summarizes an archive build.
type CreateStats struct {
	// Header is the header written to the archive.
	Header Header

	// Files is the number of entries written.
	Files int

	// Compressed is the number of entries stored encoded.
	Compressed int

	// InputBytes is the total size of the source files read.
	InputBytes uint64

	// Skipped lists sources that were left out, with the reason.
	Skipped []*EntryError
}

// Create builds an archive at archivePath from the regular files under root.
//
// Files are visited depth-first in lexical order. Symbolic links are
// followed; links that loop back to an ancestor directory are skipped.
// Files that cannot be read are reported in CreateStats.Skipped and the
// build continues. Empty directories are not recorded.
//
// The archive is written to a temporary file beside archivePath and renamed
// into place once complete, so a failed build leaves nothing behind. A root
// without any files still produces a valid, empty archive.
//
// The context can be used for cancellation between files.
func Create(ctx context.Context, root, archivePath string, opts ...CreateOption) (*CreateStats, error) {
	cfg := createConfig{algorithm: AlgorithmRLE}
	for _, opt := range opts {
		opt(&cfg)
	}

	c, err := codec.ForAlgorithm(cfg.algorithm)
	if err != nil {
		return nil, err
	}
	skip := cfg.skipCompression
	if !cfg.skipSet {
		skip = []SkipCompressionFunc{DefaultSkipCompression(DefaultMinCompressSize)}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	b := &builder{cfg: cfg, codec: c, skip: skip, stats: &CreateStats{}}
	b.log().Info("creating archive", "root", root, "archive", archivePath, "codec", cfg.algorithm.String())

	tmp, err := os.CreateTemp(filepath.Dir(archivePath), ".zov-*")
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()           //nolint:errcheck // best-effort cleanup
			_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	b.w, err = container.NewWriter(tmp,
		container.WithPassword(cfg.password != ""),
		container.WithMaxEntries(cfg.maxFiles),
	)
	if err != nil {
		return nil, fmt.Errorf("create archive: %w", err)
	}

	var exclude []fs.FileInfo
	if ti, statErr := tmp.Stat(); statErr == nil {
		exclude = append(exclude, ti)
	}
	if ai, statErr := os.Stat(archivePath); statErr == nil {
		exclude = append(exclude, ai)
	}

	report(cfg.progress, ProgressEvent{Stage: StageWalking})
	err = walk.Walk(ctx, root, b.addFile, walk.WithWarn(b.skipFile), walk.WithExclude(exclude...))
	if err != nil {
		return nil, err
	}
	if b.stats.Files == 0 {
		b.log().Warn("no files found", "root", root)
	}

	hdr, err := b.w.Finish()
	if err != nil {
		return nil, err
	}
	if err := commitArchive(tmp, archivePath); err != nil {
		return nil, fmt.Errorf("write archive: %w", err)
	}
	committed = true

	b.stats.Header = hdr
	b.log().Info("archive created",
		"archive", archivePath,
		"files", b.stats.Files,
		"compressed", b.stats.Compressed,
		"skipped", len(b.stats.Skipped),
		"size", hdr.TotalSize)
	return b.stats, nil
}

// builder holds state for archive creation.
type builder struct {
	cfg   createConfig
	codec codec.Codec
	skip  []SkipCompressionFunc
	w     *container.Writer
	stats *CreateStats
}

// log returns the logger, falling back to a discard logger if nil.
func (b *builder) log() *slog.Logger {
	if b.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.cfg.logger
}

// skipFile records a source left out of the archive.
func (b *builder) skipFile(name string, err error) {
	b.log().Warn("skipping file", "path", name, "error", err)
	b.stats.Skipped = append(b.stats.Skipped, &EntryError{Index: -1, Op: "walk", Path: name, Err: err})
}

// addFile reads one source file and appends it. Errors returned from here
// abort the build; per-file problems are recorded with skipFile.
func (b *builder) addFile(f walk.File) error {
	if err := format.ValidateName(f.Name); err != nil {
		b.skipFile(f.Name, err)
		return nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		b.skipFile(f.Name, err)
		return nil
	}

	e := Entry{Name: f.Name, Mode: platform.RawMode(f.Info)}
	payload := data
	if b.codec.Algorithm() != AlgorithmNone && !write.ShouldSkip(f.Name, f.Info, b.skip) {
		if enc, ok := b.codec.Encode(data); ok {
			payload = enc
			e.Compressed = true
			e.Algorithm = b.codec.Algorithm()
		}
	}

	if err := b.w.WriteEntry(&e, payload); err != nil {
		return fmt.Errorf("write %s: %w", f.Name, err)
	}

	b.stats.Files++
	b.stats.InputBytes += uint64(len(data))
	if e.Compressed {
		b.stats.Compressed++
	}
	b.log().Debug("added file", "path", f.Name, "size", len(data), "stored", e.Size, "codec", e.Algorithm.String())
	report(b.cfg.progress, ProgressEvent{
		Stage:     StageWriting,
		Path:      f.Name,
		BytesDone: b.stats.InputBytes,
		FilesDone: b.stats.Files,
	})
	return nil
}

// commitArchive flushes the temporary archive and renames it to target.
func commitArchive(tmp *os.File, target string) error {
	if err := tmp.Chmod(0o644); err != nil { //nolint:gosec // archives are shareable artifacts
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
