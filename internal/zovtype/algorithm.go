// Package zovtype defines shared types used across the zov package and its
// internal packages. This avoids circular imports between zov and the
// container, codec, and format packages.
package zovtype

import "fmt"

// Algorithm identifies the codec used to encode an entry payload.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota
	AlgorithmRLE
	AlgorithmZstd
	AlgorithmLZ4
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmRLE:
		return "rle"
	case AlgorithmZstd:
		return "zstd"
	case AlgorithmLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Valid reports whether a is a known algorithm identifier.
func (a Algorithm) Valid() bool {
	return a <= AlgorithmLZ4
}

// ParseAlgorithm returns the algorithm with the given name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none", "":
		return AlgorithmNone, nil
	case "rle":
		return AlgorithmRLE, nil
	case "zstd":
		return AlgorithmZstd, nil
	case "lz4":
		return AlgorithmLZ4, nil
	default:
		return AlgorithmNone, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}
