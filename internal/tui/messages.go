package tui

import (
	"github.com/Veraticus/costctl/internal/console"
	"github.com/Veraticus/costctl/internal/model"
)

// FileDroppedMsg selects a file by path, as if it had been picked.
type FileDroppedMsg struct {
	Path string
}

// Async operation messages.
type statsLoadedMsg struct {
	err   error
	stats model.Stats
}

type uploadFinishedMsg struct {
	job     *console.UploadJob
	outcome console.UploadOutcome
}

type clearFinishedMsg struct {
	err error
	job *console.ClearJob
}

type transferFinishedMsg struct {
	job     *console.TransferJob
	outcome console.TransferOutcome
}

type dataLoadedMsg struct {
	err      error
	snapshot model.Snapshot
}

// statusExpiredMsg hides the status message with the given sequence number.
type statusExpiredMsg struct {
	seq uint64
}
