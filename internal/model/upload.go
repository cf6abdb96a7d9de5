// Package model defines the core domain models used throughout the application.
package model

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxUploadSize is the largest CSV file accepted for upload (10 MiB).
const MaxUploadSize int64 = 10 * 1024 * 1024

// AllowedExtension is the only file extension accepted for upload.
const AllowedExtension = ".csv"

// UploadMode selects which ingestion pipeline receives an upload.
type UploadMode int

// Upload modes. The zero value is the cost master pipeline.
const (
	ModeCostMaster UploadMode = iota
	ModeTransaction
)

// Upload endpoints on the admin backend.
const (
	CostMasterUploadPath  = "/admin/upload"
	TransactionUploadPath = "/admin/upload-transaction"
)

// String returns the wire name of the mode.
func (m UploadMode) String() string {
	switch m {
	case ModeTransaction:
		return "transaction"
	default:
		return "cost_master"
	}
}

// Endpoint returns the backend path the mode uploads to.
func (m UploadMode) Endpoint() string {
	if m == ModeTransaction {
		return TransactionUploadPath
	}
	return CostMasterUploadPath
}

// ParseUploadMode converts a mode name to an UploadMode.
// An empty name resolves to ModeCostMaster.
func ParseUploadMode(name string) (UploadMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cost_master", "cost-master", "costmaster":
		return ModeCostMaster, nil
	case "transaction", "transactions":
		return ModeTransaction, nil
	default:
		return ModeCostMaster, fmt.Errorf("unknown upload mode %q: use cost_master or transaction", name)
	}
}

// Opener gives access to the bytes behind a selected file.
type Opener interface {
	Open() (io.ReadCloser, error)
}

// FileOpener opens a file on disk each time it is read.
type FileOpener string

// Open implements Opener.
func (p FileOpener) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

// BytesOpener serves an in-memory file.
type BytesOpener []byte

// Open implements Opener.
func (b BytesOpener) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// SelectedFile is the file currently chosen for upload.
type SelectedFile struct {
	Handle Opener
	Name   string
	Size   int64
}

// UploadResult is the interpreted outcome of an upload.
// Failure is empty on success.
type UploadResult struct {
	Failure   string
	Mode      UploadMode
	Count     int
	Processed int
	Extracted int
	Saved     int
}

// OK reports whether the upload succeeded.
func (r UploadResult) OK() bool {
	return r.Failure == ""
}

// CostMasterSuccess builds the success result of a cost master upload.
func CostMasterSuccess(count int) UploadResult {
	return UploadResult{Mode: ModeCostMaster, Count: count}
}

// TransactionSuccess builds the success result of a transaction upload.
func TransactionSuccess(processed, extracted, saved int) UploadResult {
	return UploadResult{
		Mode:      ModeTransaction,
		Processed: processed,
		Extracted: extracted,
		Saved:     saved,
	}
}

// UploadFailure builds a failed result carrying the operator-facing message.
func UploadFailure(mode UploadMode, message string) UploadResult {
	return UploadResult{Mode: mode, Failure: message}
}
