// Package codec implements the per-entry payload codecs.
//
// Every codec follows the same contract: Encode reports no gain (false) when
// the encoded form would not be strictly smaller than the input, and the
// caller stores the raw bytes instead. Decode never allocates more than
// limit bytes of output when limit is non-zero.
package codec

import (
	"errors"
	"fmt"

	"github.com/meigma/zov/internal/zovtype"
)

var (
	// ErrShortOutput is returned when an encoded stream ends before the
	// declared output size is reached. The partial output is returned with it.
	ErrShortOutput = errors.New("codec: output shorter than declared size")

	// ErrLimitExceeded is returned when decoding would produce more than the
	// caller's limit.
	ErrLimitExceeded = errors.New("codec: decoded size exceeds limit")

	// ErrCorrupt is returned when an encoded stream cannot be parsed.
	ErrCorrupt = errors.New("codec: corrupt input")
)

// Codec encodes and decodes entry payloads.
type Codec interface {
	// Algorithm returns the identifier stored in entry headers.
	Algorithm() zovtype.Algorithm

	// Encode returns the encoded form of src and true, or false when
	// encoding does not make src smaller.
	Encode(src []byte) ([]byte, bool)

	// Decode reverses Encode. A zero limit disables the output bound.
	Decode(src []byte, limit uint64) ([]byte, error)
}

// ForAlgorithm returns the codec registered for a.
func ForAlgorithm(a zovtype.Algorithm) (Codec, error) {
	switch a {
	case zovtype.AlgorithmNone:
		return Stored{}, nil
	case zovtype.AlgorithmRLE:
		return RLE{}, nil
	case zovtype.AlgorithmZstd:
		return Zstd{}, nil
	case zovtype.AlgorithmLZ4:
		return LZ4{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", zovtype.ErrUnknownAlgorithm, a)
	}
}

// Stored passes payloads through unchanged.
type Stored struct{}

// Algorithm implements Codec.
func (Stored) Algorithm() zovtype.Algorithm { return zovtype.AlgorithmNone }

// Encode implements Codec. Stored never reports a gain.
func (Stored) Encode([]byte) ([]byte, bool) { return nil, false }

// Decode implements Codec.
func (Stored) Decode(src []byte, limit uint64) ([]byte, error) {
	if limit > 0 && uint64(len(src)) > limit {
		return nil, ErrLimitExceeded
	}
	return src, nil
}
