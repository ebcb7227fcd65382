package container

import (
	"errors"
	"io"
)

// ErrOverflow indicates a counter exceeded its maximum value.
var ErrOverflow = errors.New("counter overflow")

// CountingWriter wraps a writer and counts bytes written.
type CountingWriter struct {
	W io.Writer
	N uint64
}

// Write implements io.Writer.
func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.W.Write(p)
	if n > 0 {
		//nolint:gosec // n is guaranteed non-negative by io.Writer contract
		if cw.N > ^uint64(0)-uint64(n) {
			return n, ErrOverflow
		}
		cw.N += uint64(n) //nolint:gosec // overflow checked above
	}
	return n, err
}
