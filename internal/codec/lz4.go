package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/meigma/zov/internal/sizing"
	"github.com/meigma/zov/internal/zovtype"
)

// LZ4 encodes payloads as lz4 frames.
type LZ4 struct{}

// Algorithm implements Codec.
func (LZ4) Algorithm() zovtype.Algorithm { return zovtype.AlgorithmLZ4 }

// Encode implements Codec.
func (LZ4) Encode(src []byte) ([]byte, bool) {
	if len(src) == 0 {
		return nil, false
	}
	var buf bytes.Buffer
	buf.Grow(len(src))
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, false
	}
	if err := zw.Close(); err != nil {
		return nil, false
	}
	if buf.Len() >= len(src) {
		return nil, false
	}
	return buf.Bytes(), true
}

// Decode implements Codec.
func (LZ4) Decode(src []byte, limit uint64) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(src))
	out, err := sizing.ReadAllWithLimit(zr, limit, ErrLimitExceeded)
	if err != nil {
		if errors.Is(err, ErrLimitExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return out, nil
}
