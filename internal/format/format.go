// Package format encodes and decodes the container header and entry headers.
//
// All multi-byte integers are big-endian. Layout:
//
//	header: magic[8] | entryCount u16 | totalSize u64 | hasPassword u8
//	entry:  nameLen u16 | name[nameLen] | size u64 | mode u32 | offset u64 |
//	        compressed u8 | algorithm u8
//
// Each entry header is followed by size payload bytes.
package format

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strings"

	"github.com/meigma/zov/internal/zovtype"
)

// Magic identifies a zov container.
var Magic = [8]byte{'Z', 'O', 'V', 'A', 'R', 'v', '0', '2'}

const (
	// HeaderSize is the encoded size of the container header.
	HeaderSize = 8 + 2 + 8 + 1

	// EntryFixedSize is the encoded size of an entry header excluding the name.
	EntryFixedSize = 2 + 8 + 4 + 8 + 1 + 1

	// MaxNameLen is the longest entry name accepted, in bytes.
	MaxNameLen = 4096

	// MaxEntries is the largest entry count representable in the header.
	MaxEntries = math.MaxUint16
)

// EncodeHeader returns the wire form of h.
func EncodeHeader(h zovtype.Header) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, Magic[:])
	binary.BigEndian.PutUint16(buf[8:], h.EntryCount)
	binary.BigEndian.PutUint64(buf[10:], h.TotalSize)
	if h.HasPassword {
		buf[18] = 1
	}
	return buf
}

// DecodeHeader parses a container header from buf.
func DecodeHeader(buf []byte) (zovtype.Header, error) {
	if len(buf) < HeaderSize {
		return zovtype.Header{}, zovtype.ErrTooSmall
	}
	if !bytes.Equal(buf[:8], Magic[:]) {
		return zovtype.Header{}, zovtype.ErrBadMagic
	}
	return zovtype.Header{
		EntryCount:  binary.BigEndian.Uint16(buf[8:]),
		TotalSize:   binary.BigEndian.Uint64(buf[10:]),
		HasPassword: buf[18] != 0,
	}, nil
}

// EntryHeaderSize returns the encoded size of an entry header whose name is
// nameLen bytes long.
func EntryHeaderSize(nameLen int) uint64 {
	return uint64(EntryFixedSize + nameLen) //nolint:gosec // nameLen is bounded by MaxNameLen
}

// ValidateName checks that name can be stored and later extracted safely.
func ValidateName(name string) error {
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: %d bytes", zovtype.ErrNameTooLong, len(name))
	}
	if name == "" || strings.IndexByte(name, 0) >= 0 || !fs.ValidPath(name) || name == "." {
		return fmt.Errorf("%w: %q", zovtype.ErrInvalidName, name)
	}
	return nil
}

// EncodeEntry returns the wire form of the entry header for e.
func EncodeEntry(e *zovtype.Entry) ([]byte, error) {
	if err := ValidateName(e.Name); err != nil {
		return nil, err
	}
	if !e.Algorithm.Valid() {
		return nil, fmt.Errorf("%w: %d", zovtype.ErrUnknownAlgorithm, e.Algorithm)
	}
	n := len(e.Name)
	buf := make([]byte, EntryFixedSize+n)
	binary.BigEndian.PutUint16(buf, uint16(n)) //nolint:gosec // bounded by MaxNameLen
	copy(buf[2:], e.Name)
	rest := buf[2+n:]
	binary.BigEndian.PutUint64(rest, e.Size)
	binary.BigEndian.PutUint32(rest[8:], e.Mode)
	binary.BigEndian.PutUint64(rest[12:], e.Offset)
	if e.Compressed {
		rest[20] = 1
	}
	rest[21] = byte(e.Algorithm)
	return buf, nil
}

// ReadEntry reads one entry header from r. It returns the entry and the
// number of bytes consumed. A short read is reported as ErrTruncated.
func ReadEntry(r io.Reader) (zovtype.Entry, uint64, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return zovtype.Entry{}, 0, truncated(err)
	}
	n := int(binary.BigEndian.Uint16(lenBuf[:]))
	if n == 0 || n > MaxNameLen {
		return zovtype.Entry{}, 2, fmt.Errorf("%w: name length %d", zovtype.ErrInvalidName, n)
	}

	buf := make([]byte, n+EntryFixedSize-2)
	if _, err := io.ReadFull(r, buf); err != nil {
		return zovtype.Entry{}, 2, truncated(err)
	}
	e := zovtype.Entry{Name: string(buf[:n])}
	rest := buf[n:]
	e.Size = binary.BigEndian.Uint64(rest)
	e.Mode = binary.BigEndian.Uint32(rest[8:])
	e.Offset = binary.BigEndian.Uint64(rest[12:])
	e.Compressed = rest[20] != 0
	e.Algorithm = zovtype.Algorithm(rest[21])
	consumed := EntryHeaderSize(n)

	if err := ValidateName(e.Name); err != nil {
		return e, consumed, err
	}
	if !e.Compressed {
		e.Algorithm = zovtype.AlgorithmNone
	}
	return e, consumed, nil
}

func truncated(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return zovtype.ErrTruncated
	}
	return err
}
