package zov

import "github.com/meigma/zov/internal/zovtype"

// Re-export progress types from internal/zovtype.
type (
	// ProgressEvent represents a progress update during build, extraction,
	// or verification.
	ProgressEvent = zovtype.ProgressEvent

	// ProgressStage identifies the current phase of an operation.
	ProgressStage = zovtype.ProgressStage

	// ProgressFunc receives progress updates during operations.
	ProgressFunc = zovtype.ProgressFunc
)

// Re-export progress stage constants.
const (
	// StageWalking indicates the source tree is being enumerated.
	StageWalking = zovtype.StageWalking

	// StageWriting indicates files are being encoded and appended.
	StageWriting = zovtype.StageWriting

	// StageExtracting indicates entries are being written to disk.
	StageExtracting = zovtype.StageExtracting

	// StageVerifying indicates entries are being checked.
	StageVerifying = zovtype.StageVerifying
)

func report(fn ProgressFunc, ev ProgressEvent) {
	if fn != nil {
		fn(ev)
	}
}
