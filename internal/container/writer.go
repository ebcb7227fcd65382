// Package container reads and writes the zov container stream: a fixed
// header followed by entry headers, each trailed by its payload.
package container

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/zov/internal/format"
	"github.com/meigma/zov/internal/sizing"
	"github.com/meigma/zov/internal/zovtype"
)

// Writer appends entries to a container.
//
// NewWriter writes a placeholder header; Finish rewrites it with the final
// entry count and total size. The destination must support seeking back to
// the start.
type Writer struct {
	dst        io.WriteSeeker
	cw         *CountingWriter
	header     zovtype.Header
	maxEntries int
	finished   bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPassword marks the container as password protected.
func WithPassword(protected bool) WriterOption {
	return func(w *Writer) {
		w.header.HasPassword = protected
	}
}

// WithMaxEntries lowers the entry limit below format.MaxEntries.
// Values outside 1..MaxEntries use format.MaxEntries.
func WithMaxEntries(n int) WriterOption {
	return func(w *Writer) {
		w.maxEntries = n
	}
}

// NewWriter writes a placeholder header to dst and returns a Writer
// positioned after it.
func NewWriter(dst io.WriteSeeker, opts ...WriterOption) (*Writer, error) {
	w := &Writer{dst: dst, cw: &CountingWriter{W: dst}}
	for _, opt := range opts {
		opt(w)
	}
	if w.maxEntries <= 0 || w.maxEntries > format.MaxEntries {
		w.maxEntries = format.MaxEntries
	}
	if _, err := w.cw.Write(format.EncodeHeader(w.header)); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return w, nil
}

// WriteEntry appends e and its payload. It sets e.Offset and e.Size.
// ErrTooManyFiles is returned once the entry limit is reached.
func (w *Writer) WriteEntry(e *zovtype.Entry, payload []byte) error {
	if w.finished {
		return errors.New("container: write after finish")
	}
	if int(w.header.EntryCount) >= w.maxEntries {
		return fmt.Errorf("%w: limit is %d", zovtype.ErrTooManyFiles, w.maxEntries)
	}
	if !e.Compressed {
		e.Algorithm = zovtype.AlgorithmNone
	}
	e.Offset = w.cw.N
	e.Size = uint64(len(payload))

	hdr, err := format.EncodeEntry(e)
	if err != nil {
		return err
	}
	end, ok := sizing.AddUint64(w.cw.N, uint64(len(hdr)))
	if ok {
		_, ok = sizing.AddUint64(end, e.Size)
	}
	if !ok {
		return zovtype.ErrSizeOverflow
	}

	if _, err := w.cw.Write(hdr); err != nil {
		return fmt.Errorf("write entry header %s: %w", e.Name, err)
	}
	if _, err := w.cw.Write(payload); err != nil {
		return fmt.Errorf("write payload %s: %w", e.Name, err)
	}
	w.header.EntryCount++
	w.header.TotalSize = w.cw.N
	return nil
}

// Header returns the header as it will be written by Finish.
func (w *Writer) Header() zovtype.Header {
	h := w.header
	h.TotalSize = w.cw.N
	return h
}

// Finish rewrites the header at offset zero and leaves the destination
// positioned at its end.
func (w *Writer) Finish() (zovtype.Header, error) {
	h := w.Header()
	if _, err := w.dst.Seek(0, io.SeekStart); err != nil {
		return h, fmt.Errorf("seek header: %w", err)
	}
	if _, err := w.dst.Write(format.EncodeHeader(h)); err != nil {
		return h, fmt.Errorf("rewrite header: %w", err)
	}
	if _, err := w.dst.Seek(0, io.SeekEnd); err != nil {
		return h, fmt.Errorf("seek end: %w", err)
	}
	w.finished = true
	return h, nil
}
