package zovtype

// Header is the fixed-size record at offset zero of a container.
type Header struct {
	// EntryCount is the number of entries that follow the header.
	EntryCount uint16

	// TotalSize is the header size plus the size of every entry header
	// and payload written after it.
	TotalSize uint64

	// HasPassword records that a credential was supplied at build time.
	HasPassword bool
}

// Entry describes one file stored in a container.
type Entry struct {
	// Name is the slash-separated path relative to the source root
	// (e.g., "src/main.go").
	Name string

	// Size is the number of payload bytes stored after the entry header.
	// For compressed entries this is the encoded size.
	Size uint64

	// Mode holds the raw Unix mode bits of the source file, including the
	// file type and setuid, setgid, and sticky bits.
	Mode uint32

	// Offset is the position of this entry's header inside the container.
	Offset uint64

	// Compressed reports whether the payload is encoded.
	Compressed bool

	// Algorithm is the codec used for the payload. AlgorithmNone when
	// Compressed is false.
	Algorithm Algorithm
}

// Perm returns the permission and special bits of the entry mode.
func (e *Entry) Perm() uint32 {
	return e.Mode & 0o7777
}
