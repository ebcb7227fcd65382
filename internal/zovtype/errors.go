package zovtype

import "errors"

// Sentinel errors for zov operations.
var (
	// ErrNotDirectory is returned when the build root is not a directory.
	ErrNotDirectory = errors.New("zov: not a directory")

	// ErrTooSmall is returned when a container is shorter than its header.
	ErrTooSmall = errors.New("zov: archive too small")

	// ErrBadMagic is returned when the container magic does not match.
	ErrBadMagic = errors.New("zov: invalid archive magic")

	// ErrPasswordRequired is returned when a protected container is
	// extracted without a credential.
	ErrPasswordRequired = errors.New("zov: password required")

	// ErrTooManyFiles is returned when a build would exceed the entry limit.
	ErrTooManyFiles = errors.New("zov: too many files")

	// ErrNameTooLong is returned when an entry name exceeds the name limit.
	ErrNameTooLong = errors.New("zov: name too long")

	// ErrInvalidName is returned when an entry name is empty, absolute,
	// contains NUL, or escapes the root.
	ErrInvalidName = errors.New("zov: invalid entry name")

	// ErrTruncated is returned when the container ends before a declared
	// entry header or payload.
	ErrTruncated = errors.New("zov: archive truncated")

	// ErrUnknownAlgorithm is returned for an unrecognized codec identifier.
	ErrUnknownAlgorithm = errors.New("zov: unknown compression algorithm")

	// ErrDecompression is returned when a payload fails to decode.
	ErrDecompression = errors.New("zov: decompression failed")

	// ErrEntryTooLarge is returned when an entry exceeds the extraction ceiling.
	ErrEntryTooLarge = errors.New("zov: entry exceeds size limit")

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = errors.New("zov: size overflow")

	// ErrSymlinkLoop is returned when a followed symlink leads back to an
	// ancestor directory.
	ErrSymlinkLoop = errors.New("zov: symlink loop")

	// ErrNotRegular is returned for sources that are not regular files.
	ErrNotRegular = errors.New("zov: not a regular file")
)
