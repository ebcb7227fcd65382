package zov

import (
	"github.com/meigma/zov/internal/format"
	"github.com/meigma/zov/internal/zovtype"
)

// Re-export types from internal/zovtype for public API.
type (
	// Entry describes one file stored in an archive.
	Entry = zovtype.Entry

	// Header is the fixed record at the start of an archive.
	Header = zovtype.Header

	// Algorithm identifies the codec used for an entry payload.
	Algorithm = zovtype.Algorithm
)

// Re-export algorithm constants.
const (
	AlgorithmNone = zovtype.AlgorithmNone
	AlgorithmRLE  = zovtype.AlgorithmRLE
	AlgorithmZstd = zovtype.AlgorithmZstd
	AlgorithmLZ4  = zovtype.AlgorithmLZ4
)

// Format limits.
const (
	// HeaderSize is the encoded size of the archive header.
	HeaderSize = format.HeaderSize

	// MaxEntries is the largest number of files an archive can hold.
	MaxEntries = format.MaxEntries

	// MaxNameLen is the longest relative path stored, in bytes.
	MaxNameLen = format.MaxNameLen
)

// ParseAlgorithm returns the algorithm with the given name
// ("none", "rle", "zstd", or "lz4").
var ParseAlgorithm = zovtype.ParseAlgorithm
