package zovtype

// ProgressEvent represents a progress update during build, extraction, or
// verification.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the entry currently being processed, if applicable.
	Path string

	// BytesDone is the number of payload bytes completed so far.
	BytesDone uint64

	// FilesDone is the number of entries completed.
	FilesDone int

	// FilesTotal is the total number of entries.
	// Zero indicates the total is unknown (e.g., while walking).
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for build, extraction, and verification.
const (
	// StageWalking indicates the source tree is being enumerated.
	StageWalking ProgressStage = iota

	// StageWriting indicates files are being encoded and appended.
	StageWriting

	// StageExtracting indicates entries are being written to disk.
	StageExtracting

	// StageVerifying indicates entries are being checked.
	StageVerifying
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageWalking:
		return "walking"
	case StageWriting:
		return "writing"
	case StageExtracting:
		return "extracting"
	case StageVerifying:
		return "verifying"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
type ProgressFunc func(ProgressEvent)
