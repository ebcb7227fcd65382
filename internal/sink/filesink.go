// Package sink writes extracted entries to the filesystem.
package sink

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Committer is a writer that can be committed or discarded.
type Committer interface {
	io.Writer

	// Commit finalizes the write, making the file visible at its path.
	Commit() error

	// Discard aborts the write and removes temporary resources.
	Discard() error
}

// FileSink writes entries below a destination directory.
//
// Every path is resolved through an os.Root, so entry names cannot escape
// the destination. Files are written to a temporary file in the target
// directory and renamed on Commit; partially written files are never
// visible at the final path.
type FileSink struct {
	dir       string
	root      *os.Root
	overwrite bool
	now       func() time.Time
}

// Option configures a FileSink.
type Option func(*FileSink)

// WithOverwrite controls whether existing files are replaced.
// Overwriting is enabled by default.
func WithOverwrite(overwrite bool) Option {
	return func(s *FileSink) {
		s.overwrite = overwrite
	}
}

// WithClock sets the time source used to stamp extracted files.
func WithClock(now func() time.Time) Option {
	return func(s *FileSink) {
		s.now = now
	}
}

// Open creates dir if needed and returns a FileSink rooted at it.
func Open(dir string, opts ...Option) (*FileSink, error) {
	s := &FileSink{dir: dir, overwrite: true, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // extracted trees are world-readable like the sources
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open output directory %s: %w", dir, err)
	}
	s.root = root
	return s, nil
}

// Close releases the destination root.
func (s *FileSink) Close() error {
	return s.root.Close()
}

// ShouldProcess returns false if the file already exists and overwrite is disabled.
func (s *FileSink) ShouldProcess(name string) bool {
	if s.overwrite {
		return true
	}
	if !fs.ValidPath(name) {
		return false
	}
	_, err := s.root.Stat(filepath.FromSlash(name))
	return errors.Is(err, fs.ErrNotExist)
}

// Writer returns a Committer for the entry name. On Commit the file receives
// mode and has its access and modification times set to the current time.
func (s *FileSink) Writer(name string, mode fs.FileMode) (Committer, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &fs.PathError{Op: "extract", Path: name, Err: fs.ErrInvalid}
	}
	destRel := filepath.FromSlash(name)

	if err := s.root.MkdirAll(filepath.Dir(destRel), 0o755); err != nil { //nolint:gosec // see Open
		return nil, fmt.Errorf("create directory for %s: %w", name, err)
	}

	tempFile, tempRel, err := createTempFile(s.root, filepath.Dir(destRel), ".zov-")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &fileCommitter{
		sink:     s,
		name:     name,
		mode:     mode,
		destRel:  destRel,
		tempFile: tempFile,
		tempRel:  tempRel,
	}, nil
}

// fileCommitter writes to a temp file and renames on Commit.
type fileCommitter struct {
	sink     *FileSink
	name     string
	mode     fs.FileMode
	destRel  string
	tempFile *os.File
	tempRel  string
}

// Write implements io.Writer.
func (c *fileCommitter) Write(p []byte) (int, error) {
	return c.tempFile.Write(p)
}

// Commit closes the temp file, applies metadata, and renames to final path.
func (c *fileCommitter) Commit() error {
	root := c.sink.root
	if err := c.tempFile.Close(); err != nil {
		_ = root.Remove(c.tempRel) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := root.Chmod(c.tempRel, c.mode); err != nil {
		_ = root.Remove(c.tempRel) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("chmod: %w", err)
	}

	now := c.sink.now()
	if err := root.Chtimes(c.tempRel, now, now); err != nil {
		_ = root.Remove(c.tempRel) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("chtimes: %w", err)
	}

	if err := root.Rename(c.tempRel, c.destRel); err != nil {
		_ = root.Remove(c.tempRel) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("rename to %s: %w", c.name, err)
	}
	return nil
}

// Discard closes and removes the temp file.
func (c *fileCommitter) Discard() error {
	_ = c.tempFile.Close() //nolint:errcheck // we're cleaning up
	return c.sink.root.Remove(c.tempRel)
}

func createTempFile(root *os.Root, dir, prefix string) (*os.File, string, error) {
	const attempts = 10
	for range attempts {
		name, err := randomSuffix()
		if err != nil {
			return nil, "", err
		}
		relPath := filepath.Join(dir, prefix+name)
		f, err := root.OpenFile(relPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			return f, relPath, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", errors.New("create temp file: exhausted retries")
}

func randomSuffix() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
