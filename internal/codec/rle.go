package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/meigma/zov/internal/zovtype"
)

const (
	// rleEscape introduces a run marker: escape, value, count.
	rleEscape = 0xF8

	// rleMaxRun is the longest run a single marker can describe.
	rleMaxRun = 255

	// rleMinRun is the shortest run emitted as a marker. Shorter runs are
	// written as literals unless the value is the escape byte.
	rleMinRun = 4

	rleLenPrefix = 4
)

// RLE is a byte-oriented run-length codec.
//
// Encoded layout: a 4-byte big-endian original length, then a sequence of
// literal bytes and 3-byte markers [0xF8, value, count]. The escape byte
// never appears as a literal, so runs of it are always marker-encoded.
type RLE struct{}

// Algorithm implements Codec.
func (RLE) Algorithm() zovtype.Algorithm { return zovtype.AlgorithmRLE }

// Encode implements Codec.
func (RLE) Encode(src []byte) ([]byte, bool) {
	// The length prefix alone is as large as any input this short.
	if len(src) <= rleLenPrefix || uint64(len(src)) > math.MaxUint32 {
		return nil, false
	}

	dst := make([]byte, rleLenPrefix, len(src))
	binary.BigEndian.PutUint32(dst, uint32(len(src))) //nolint:gosec // checked above

	for i := 0; i < len(src); {
		v := src[i]
		n := 1
		for i+n < len(src) && src[i+n] == v && n < rleMaxRun {
			n++
		}
		if v == rleEscape || n >= rleMinRun {
			dst = append(dst, rleEscape, v, byte(n))
		} else {
			for range n {
				dst = append(dst, v)
			}
		}
		if len(dst) >= len(src) {
			return nil, false
		}
		i += n
	}
	return dst, true
}

// Decode implements Codec. Decoding stops at the end of src or once the
// declared length is reached; a short result is returned with ErrShortOutput.
func (RLE) Decode(src []byte, limit uint64) ([]byte, error) {
	if len(src) < rleLenPrefix {
		return nil, fmt.Errorf("%w: missing length prefix", ErrCorrupt)
	}
	size := uint64(binary.BigEndian.Uint32(src))
	if limit > 0 && size > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrLimitExceeded, size, limit)
	}

	in := src[rleLenPrefix:]
	out := make([]byte, 0, min(size, uint64(len(in))*rleMaxRun))
	for i := 0; i < len(in) && uint64(len(out)) < size; {
		b := in[i]
		if b != rleEscape {
			out = append(out, b)
			i++
			continue
		}
		if i+2 >= len(in) {
			break
		}
		v, n := in[i+1], uint64(in[i+2])
		n = min(n, size-uint64(len(out)))
		for range n {
			out = append(out, v)
		}
		i += 3
	}

	if uint64(len(out)) < size {
		return out, fmt.Errorf("%w: got %d of %d bytes", ErrShortOutput, len(out), size)
	}
	return out, nil
}
