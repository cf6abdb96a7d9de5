// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/costctl/internal/model"
)

// AdminBackend is the remote admin API the console drives.
//
// Application-level rejections are returned as *common.ApplicationError and
// connectivity or decode failures as *common.TransportError.
type AdminBackend interface {
	// Ingestion
	UploadCostMaster(ctx context.Context, file model.SelectedFile) (int, error)
	UploadTransactions(ctx context.Context, file model.SelectedFile) (TransactionCounts, error)

	// Templates
	Template(ctx context.Context, templateType string) ([]byte, error)
	TransactionTemplate(ctx context.Context) ([]byte, error)

	// Inspection
	Stats(ctx context.Context) (model.Stats, error)
	Data(ctx context.Context) (model.Snapshot, error)
	Export(ctx context.Context) ([]byte, error)

	// Destructive
	Clear(ctx context.Context, req model.ClearRequest) error
}

// TransactionCounts summarizes a transaction-extraction upload.
type TransactionCounts struct {
	Processed int `json:"processed"`
	Extracted int `json:"extracted"`
	Saved     int `json:"saved"`
}
