package zov

import (
	"errors"
	"fmt"

	"github.com/meigma/zov/internal/zovtype"
)

// Sentinel errors re-exported from internal/zovtype.
var (
	// ErrNotDirectory is returned when the build root is not a directory.
	ErrNotDirectory = zovtype.ErrNotDirectory

	// ErrTooSmall is returned when an archive is shorter than its header.
	ErrTooSmall = zovtype.ErrTooSmall

	// ErrBadMagic is returned when the archive magic does not match.
	ErrBadMagic = zovtype.ErrBadMagic

	// ErrPasswordRequired is returned when a protected archive is extracted
	// without a password.
	ErrPasswordRequired = zovtype.ErrPasswordRequired

	// ErrTooManyFiles is returned when a build would exceed the entry limit.
	ErrTooManyFiles = zovtype.ErrTooManyFiles

	// ErrNameTooLong is returned for relative paths longer than MaxNameLen.
	ErrNameTooLong = zovtype.ErrNameTooLong

	// ErrInvalidName is returned for entry names that are not safe relative paths.
	ErrInvalidName = zovtype.ErrInvalidName

	// ErrTruncated is returned when the archive ends inside an entry.
	ErrTruncated = zovtype.ErrTruncated

	// ErrDecompression is returned when a payload fails to decode.
	ErrDecompression = zovtype.ErrDecompression

	// ErrEntryTooLarge is returned when an entry exceeds the extraction ceiling.
	ErrEntryTooLarge = zovtype.ErrEntryTooLarge

	// ErrNotRegular is returned for sources or entries that are not regular
	// files.
	ErrNotRegular = zovtype.ErrNotRegular

	// ErrSymlinkLoop is returned when a followed symlink leads back to an
	// ancestor directory.
	ErrSymlinkLoop = zovtype.ErrSymlinkLoop
)

// ErrPartial matches a *PartialError.
var ErrPartial = errors.New("zov: partial extraction")

// EntryError records a problem with a single entry that did not stop the
// operation.
type EntryError struct {
	// Index is the entry position in the archive, or -1 during a build.
	Index int

	// Op names the step that failed ("walk", "read", "decode", "write", "skip").
	Op string

	// Path is the entry name.
	Path string

	Err error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// PartialError reports that extraction finished without writing every entry.
type PartialError struct {
	Extracted int
	Expected  int
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("zov: extracted %d of %d entries", e.Extracted, e.Expected)
}

// Is reports whether target is ErrPartial.
func (e *PartialError) Is(target error) bool {
	return target == ErrPartial
}

// IsRecoverable reports whether err describes a per-entry problem rather
// than a failure of the whole operation.
func IsRecoverable(err error) bool {
	var ee *EntryError
	return errors.As(err, &ee) || errors.Is(err, ErrPartial)
}
