package console

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
)

// ClearState is a state of the destructive clear workflow.
type ClearState int

// Clear workflow states.
const (
	ClearIdle ClearState = iota
	ClearCollecting
	ClearValidating
	ClearSubmitting
	ClearDone
)

func (s ClearState) String() string {
	switch s {
	case ClearCollecting:
		return "collecting"
	case ClearValidating:
		return "validating"
	case ClearSubmitting:
		return "submitting"
	case ClearDone:
		return "done"
	default:
		return "idle"
	}
}

// ClearWorkflow guards the destructive clear behind target selection and a typed phrase.
type ClearWorkflow struct {
	backend   service.AdminBackend
	status    *StatusReporter
	refresher Refresher
	diag      common.Diagnostics
	request   model.ClearRequest
	state     ClearState
	enabled   bool
}

// ClearJob is a validated clear request ready to send.
type ClearJob struct {
	backend service.AdminBackend
	Request model.ClearRequest
}

// State returns the current state.
func (w *ClearWorkflow) State() ClearState {
	return w.state
}

// Active reports whether a clear attempt is open.
func (w *ClearWorkflow) Active() bool {
	switch w.state {
	case ClearCollecting, ClearValidating, ClearSubmitting:
		return true
	default:
		return false
	}
}

// Request returns the fields collected so far.
func (w *ClearWorkflow) Request() model.ClearRequest {
	return w.request
}

// Open starts a fresh attempt with the cost master selected and an empty phrase.
func (w *ClearWorkflow) Open() error {
	if !w.enabled {
		return fmt.Errorf("clear: %w", common.ErrCapabilityMissing)
	}
	if w.state == ClearSubmitting {
		return common.ErrClearInFlight
	}
	w.request = model.ClearRequest{ClearCostMaster: true}
	w.state = ClearCollecting
	return nil
}

// SetTargets replaces both target flags.
func (w *ClearWorkflow) SetTargets(costMaster, recipes bool) error {
	if w.state != ClearCollecting {
		return common.ErrClearNotOpen
	}
	w.request.ClearCostMaster = costMaster
	w.request.ClearRecipes = recipes
	return nil
}

// ToggleCostMaster flips the cost master flag.
func (w *ClearWorkflow) ToggleCostMaster() error {
	return w.SetTargets(!w.request.ClearCostMaster, w.request.ClearRecipes)
}

// ToggleRecipes flips the recipes flag.
func (w *ClearWorkflow) ToggleRecipes() error {
	return w.SetTargets(w.request.ClearCostMaster, !w.request.ClearRecipes)
}

// SetPhrase records the typed confirmation phrase.
func (w *ClearWorkflow) SetPhrase(phrase string) error {
	if w.state != ClearCollecting {
		return common.ErrClearNotOpen
	}
	w.request.ConfirmationPhrase = phrase
	return nil
}

// Cancel abandons the attempt without side effects.
// A request already submitted cannot be abandoned.
func (w *ClearWorkflow) Cancel() error {
	if w.state == ClearSubmitting {
		return common.ErrClearInFlight
	}
	w.request = model.ClearRequest{}
	w.state = ClearIdle
	return nil
}

// Commit validates the collected fields. On success the workflow is Submitting
// and the returned job must be run and passed to Finish.
func (w *ClearWorkflow) Commit() (*ClearJob, error) {
	switch w.state {
	case ClearSubmitting:
		return nil, common.ErrClearInFlight
	case ClearCollecting:
	default:
		return nil, common.ErrClearNotOpen
	}

	w.state = ClearValidating
	if !w.request.Confirmed() {
		w.state = ClearCollecting
		w.status.Error(msgClearConfirmNeeded)
		return nil, common.NewValidationError(common.ErrEmptyConfirmation, msgClearConfirmNeeded)
	}
	if !w.request.HasTarget() {
		w.state = ClearCollecting
		w.status.Error(msgClearNoTarget)
		return nil, common.NewValidationError(common.ErrNoTargetSelected, msgClearNoTarget)
	}

	w.state = ClearSubmitting
	slog.Info("Submitting clear",
		"clear_cost_master", w.request.ClearCostMaster,
		"clear_recipes", w.request.ClearRecipes)
	return &ClearJob{backend: w.backend, Request: w.request}, nil
}

// Run sends the clear request. It does not touch workflow state.
func (j *ClearJob) Run(ctx context.Context) error {
	return j.backend.Clear(ctx, j.Request)
}

// Finish applies the result of a submitted clear.
// On failure the workflow returns to Collecting with the fields intact.
func (w *ClearWorkflow) Finish(ctx context.Context, job *ClearJob, err error) error {
	if err != nil {
		w.state = ClearCollecting
		if appErr, ok := common.AsApplication(err); ok {
			w.status.Error(appErr.MessageOr(msgClearFailed))
			return err
		}
		w.diag.Fault("ClearWorkflow", "clear", err)
		w.status.Error(msgClearTransport)
		return err
	}

	w.status.Success(dataCleared(job.Request.Targets()))
	w.request = model.ClearRequest{}
	w.state = ClearDone
	w.refresher.Refresh(ctx)
	return nil
}

// Submit commits, sends and finishes in one step.
func (w *ClearWorkflow) Submit(ctx context.Context) error {
	job, err := w.Commit()
	if err != nil {
		return err
	}
	return w.Finish(ctx, job, job.Run(ctx))
}
