package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
)

// UploadDispatcher sends the selected file to the endpoint of the chosen mode.
//
// An upload runs in three steps so it can be driven from an event loop:
// Begin and Finish touch console state and must run on the loop; Run only
// performs the request and may run anywhere.
type UploadDispatcher struct {
	backend   service.AdminBackend
	intake    *FileIntake
	trigger   *uploadTrigger
	progress  Indicator
	modes     ModeSource
	status    *StatusReporter
	refresher Refresher
	diag      common.Diagnostics
	enabled   bool
}

// UploadJob is an in-flight upload.
type UploadJob struct {
	backend service.AdminBackend
	File    model.SelectedFile
	Mode    model.UploadMode
}

// UploadOutcome is what the request returned.
type UploadOutcome struct {
	Err    error
	Result model.UploadResult
}

// Enabled reports whether the upload trigger may fire.
func (d *UploadDispatcher) Enabled() bool {
	return d.enabled && d.trigger.Enabled()
}

// InFlight reports whether an upload is between Begin and Finish.
func (d *UploadDispatcher) InFlight() bool {
	return d.trigger.inFlight
}

// ResolveMode reads the ingestion mode from the mode control.
// Without an explicit choice it falls back to the cost master pipeline.
func (d *UploadDispatcher) ResolveMode() model.UploadMode {
	if d.modes != nil {
		if mode, ok := d.modes.SelectedMode(); ok {
			return mode
		}
	}
	slog.Warn("Upload mode not selected, using default", "mode", model.ModeCostMaster.String())
	return model.ModeCostMaster
}

// Begin starts an upload of the current selection.
// While another upload is in flight it returns ErrUploadInFlight and does nothing else.
func (d *UploadDispatcher) Begin() (*UploadJob, error) {
	if !d.enabled {
		return nil, fmt.Errorf("upload: %w", common.ErrCapabilityMissing)
	}
	if d.trigger.inFlight {
		return nil, common.ErrUploadInFlight
	}

	file, ok := d.intake.Current()
	if !ok {
		d.status.Error(msgNoFileSelected)
		return nil, common.NewValidationError(common.ErrNoFileSelected, msgNoFileSelected)
	}

	mode := d.ResolveMode()
	slog.Debug("Dispatching upload",
		"file", file.Name,
		"size", file.Size,
		"mode", mode.String(),
		"endpoint", mode.Endpoint())

	d.trigger.setInFlight(true)
	if d.progress != nil {
		d.progress.SetVisible(true)
	}
	if mode == model.ModeTransaction {
		d.status.Info(msgParsingTx)
	} else {
		d.status.Info(msgUploading)
	}

	return &UploadJob{backend: d.backend, File: file, Mode: mode}, nil
}

// Run performs the request. It does not touch console state.
func (j *UploadJob) Run(ctx context.Context) UploadOutcome {
	switch j.Mode {
	case model.ModeTransaction:
		counts, err := j.backend.UploadTransactions(ctx, j.File)
		if err != nil {
			return UploadOutcome{Err: err}
		}
		return UploadOutcome{Result: model.TransactionSuccess(counts.Processed, counts.Extracted, counts.Saved)}
	default:
		count, err := j.backend.UploadCostMaster(ctx, j.File)
		if err != nil {
			return UploadOutcome{Err: err}
		}
		return UploadOutcome{Result: model.CostMasterSuccess(count)}
	}
}

// Finish interprets the outcome and re-arms the trigger on every path.
func (d *UploadDispatcher) Finish(ctx context.Context, job *UploadJob, outcome UploadOutcome) (model.UploadResult, error) {
	defer func() {
		d.trigger.setInFlight(false)
		if d.progress != nil {
			d.progress.SetVisible(false)
		}
	}()

	if outcome.Err != nil {
		if appErr, ok := common.AsApplication(outcome.Err); ok {
			message := appErr.MessageOr(msgUploadFailed)
			slog.Warn("Upload rejected", "file", job.File.Name, "mode", job.Mode.String(), "error", outcome.Err)
			d.status.Error(message)
			return model.UploadFailure(job.Mode, message), outcome.Err
		}

		d.diag.Fault("UploadDispatcher", "upload", outcome.Err)
		d.status.Error(msgUploadTransport)
		return model.UploadFailure(job.Mode, msgUploadTransport), outcome.Err
	}

	result := outcome.Result
	result.Mode = job.Mode
	if job.Mode == model.ModeTransaction {
		d.status.Success(transactionsUploaded(result.Processed, result.Extracted, result.Saved))
	} else {
		d.status.Success(costMasterUploaded(result.Count))
	}

	d.intake.Reset()
	d.refresher.Refresh(ctx)
	return result, nil
}

// Upload runs Begin, Run and Finish in sequence.
func (d *UploadDispatcher) Upload(ctx context.Context) (model.UploadResult, error) {
	job, err := d.Begin()
	if err != nil {
		return model.UploadResult{}, err
	}
	return d.Finish(ctx, job, job.Run(ctx))
}
