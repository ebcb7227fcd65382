// Package sizing provides overflow-checked size arithmetic for container
// offsets and payload buffers.
package sizing

import (
	"io"
	"math"
)

// ToInt converts a uint64 to int, returning overflowErr if it doesn't fit.
func ToInt(size uint64, overflowErr error) (int, error) {
	if size > uint64(math.MaxInt) {
		return 0, overflowErr
	}
	return int(size), nil
}

// ToInt64 converts a uint64 to int64, returning overflowErr if it doesn't fit.
func ToInt64(size uint64, overflowErr error) (int64, error) {
	if size > uint64(math.MaxInt64) {
		return 0, overflowErr
	}
	return int64(size), nil
}

// AddUint64 adds two uint64 values, returning (result, false) on overflow.
func AddUint64(a, b uint64) (uint64, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// Remaining returns end-pos, or zero when pos is at or past end.
func Remaining(end, pos uint64) uint64 {
	if pos >= end {
		return 0
	}
	return end - pos
}

// ReadAllWithLimit reads everything from r, failing with limitErr once more
// than maxSize bytes are produced. A zero maxSize means no limit.
func ReadAllWithLimit(r io.Reader, maxSize uint64, limitErr error) ([]byte, error) {
	if maxSize == 0 {
		return io.ReadAll(r)
	}
	if maxSize > uint64(math.MaxInt64-1) {
		return nil, limitErr
	}
	lr := &io.LimitedReader{R: r, N: int64(maxSize) + 1} //nolint:gosec // checked above
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) > maxSize {
		return nil, limitErr
	}
	return data, nil
}
