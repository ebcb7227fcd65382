package container

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/meigma/zov/internal/format"
	"github.com/meigma/zov/internal/sizing"
	"github.com/meigma/zov/internal/zovtype"
)

// Reader iterates over the entries of a container.
//
// Call Next to parse each entry header, then either ReadPayload or
// SkipPayload. Next skips any payload left unread.
type Reader struct {
	src     io.ReadSeeker
	closer  io.Closer
	size    uint64
	pos     uint64
	header  zovtype.Header
	read    int
	pending uint64
	broken  error
}

// Open opens the container at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	r, err := NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader parses the container header from src, which holds size bytes.
func NewReader(src io.ReadSeeker, size int64) (*Reader, error) {
	if size < format.HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", zovtype.ErrTooSmall, size)
	}
	buf := make([]byte, format.HeaderSize)
	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	h, err := format.DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	return &Reader{
		src:    src,
		size:   uint64(size),
		pos:    format.HeaderSize,
		header: h,
	}, nil
}

// Header returns the container header.
func (r *Reader) Header() zovtype.Header {
	return r.header
}

// Size returns the container length in bytes.
func (r *Reader) Size() uint64 {
	return r.size
}

// Next parses the next entry header. It returns io.EOF after the number of
// entries declared in the header. Once Next fails, later calls return the
// same error.
//
// When the declared payload runs past the end of the container, Next
// returns the parsed entry together with ErrTruncated. An entry whose name
// is unsafe is returned with ErrInvalidName; if its header was otherwise
// complete, Err stays nil and the next call moves past it.
func (r *Reader) Next() (zovtype.Entry, error) {
	if r.broken != nil {
		return zovtype.Entry{}, r.broken
	}
	if r.read >= int(r.header.EntryCount) {
		return zovtype.Entry{}, io.EOF
	}
	if r.pending > 0 {
		if err := r.SkipPayload(); err != nil {
			return zovtype.Entry{}, err
		}
	}

	e, n, err := format.ReadEntry(r.src)
	r.pos += n
	r.read++
	if err != nil {
		// A complete header with an unsafe name leaves the stream in step.
		if errors.Is(err, zovtype.ErrInvalidName) && n == format.EntryHeaderSize(len(e.Name)) &&
			e.Size <= sizing.Remaining(r.size, r.pos) {
			r.pending = e.Size
			return e, err
		}
		r.broken = err
		return e, err
	}
	if e.Size > sizing.Remaining(r.size, r.pos) {
		r.broken = fmt.Errorf("%w: %s declares %d bytes, %d remain",
			zovtype.ErrTruncated, e.Name, e.Size, sizing.Remaining(r.size, r.pos))
		return e, r.broken
	}
	r.pending = e.Size
	return e, nil
}

// ReadPayload reads the payload of the current entry.
func (r *Reader) ReadPayload() ([]byte, error) {
	n, err := sizing.ToInt(r.pending, zovtype.ErrSizeOverflow)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.src, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			err = zovtype.ErrTruncated
		}
		r.broken = err
		return nil, err
	}
	r.pos += r.pending
	r.pending = 0
	return buf, nil
}

// SkipPayload seeks past the payload of the current entry.
func (r *Reader) SkipPayload() error {
	if r.pending == 0 {
		return nil
	}
	off, err := sizing.ToInt64(r.pending, zovtype.ErrSizeOverflow)
	if err != nil {
		return err
	}
	if _, err := r.src.Seek(off, io.SeekCurrent); err != nil {
		r.broken = err
		return err
	}
	r.pos += r.pending
	r.pending = 0
	return nil
}

// Err returns the error that stopped iteration, if any.
func (r *Reader) Err() error {
	return r.broken
}

// Close closes the underlying file when the Reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
