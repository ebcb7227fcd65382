package codec

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/meigma/zov/internal/sizing"
	"github.com/meigma/zov/internal/zovtype"
)

// zstdEncoder is shared across calls; EncodeAll is safe for concurrent use.
var zstdEncoder = sync.OnceValues(func() (*zstd.Encoder, error) {
	return zstd.NewWriter(nil, zstd.WithEncoderConcurrency(1), zstd.WithLowerEncoderMem(true))
})

// Zstd encodes payloads as single zstd frames.
type Zstd struct{}

// Algorithm implements Codec.
func (Zstd) Algorithm() zovtype.Algorithm { return zovtype.AlgorithmZstd }

// Encode implements Codec.
func (Zstd) Encode(src []byte) ([]byte, bool) {
	if len(src) == 0 {
		return nil, false
	}
	enc, err := zstdEncoder()
	if err != nil {
		return nil, false
	}
	out := enc.EncodeAll(src, make([]byte, 0, len(src)))
	if len(out) >= len(src) {
		return nil, false
	}
	return out, true
}

// Decode implements Codec.
func (Zstd) Decode(src []byte, limit uint64) ([]byte, error) {
	var h zstd.Header
	if err := h.Decode(src); err == nil && h.HasFCS && limit > 0 && h.FrameContentSize > limit {
		return nil, fmt.Errorf("%w: %d > %d", ErrLimitExceeded, h.FrameContentSize, limit)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()
	if err := dec.Reset(bytes.NewReader(src)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	out, err := sizing.ReadAllWithLimit(dec, limit, ErrLimitExceeded)
	if err != nil {
		if errors.Is(err, ErrLimitExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return out, nil
}
