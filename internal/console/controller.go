// Package console implements the admin console core: file intake, upload
// dispatch, the guarded clear workflow, the status channel and stats sync.
//
// Everything here is confined to one logical thread. Operations that talk to
// the backend are split into a Begin step, a Run step that only performs the
// request, and a Finish step, so an event loop can run the request elsewhere
// and apply the result back on its own goroutine.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
)

// Option configures a Controller.
type Option func(*options)

type options struct {
	now       func() time.Time
	diag      common.Diagnostics
	refresher Refresher
}

// WithClock sets the clock used for status expiry and export file names.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithDiagnostics sets the sink that receives operation faults.
func WithDiagnostics(diag common.Diagnostics) Option {
	return func(o *options) {
		o.diag = diag
	}
}

// WithRefresher replaces the stats refresh run after mutating actions.
// By default the controller's StatsSync refreshes synchronously.
func WithRefresher(r Refresher) Option {
	return func(o *options) {
		o.refresher = r
	}
}

// Controller assembles the console components around one backend.
type Controller struct {
	backend   service.AdminBackend
	refresher Refresher
	now       func() time.Time
	diag      common.Diagnostics

	Caps    Capabilities
	Status  *StatusReporter
	Intake  *FileIntake
	Uploads *UploadDispatcher
	Clear   *ClearWorkflow
	Stats   *StatsSync
}

// NewController wires the components. Capabilities are detected once here.
func NewController(backend service.AdminBackend, controls Controls, opts ...Option) *Controller {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.diag == nil {
		o.diag = common.SlogDiagnostics{}
	}

	caps := DetectCapabilities(controls)
	status := NewStatusReporter(o.now)
	trigger := &uploadTrigger{control: controls.trigger()}
	trigger.sync()

	stats := &StatsSync{backend: backend, view: controls.statsView(), diag: o.diag}
	refresher := o.refresher
	if refresher == nil {
		refresher = stats
	}

	intake := &FileIntake{
		status:  status,
		trigger: trigger,
		enabled: caps.Has(CapFileInput),
	}

	return &Controller{
		backend:   backend,
		refresher: refresher,
		now:       o.now,
		diag:      o.diag,
		Caps:      caps,
		Status:    status,
		Intake:    intake,
		Stats:     stats,
		Uploads: &UploadDispatcher{
			backend:   backend,
			intake:    intake,
			trigger:   trigger,
			progress:  controls.progress(),
			modes:     controls.modeSource(),
			status:    status,
			refresher: refresher,
			diag:      o.diag,
			enabled:   caps.Has(CapFileInput) && caps.Has(CapUploadTrigger),
		},
		Clear: &ClearWorkflow{
			backend:   backend,
			status:    status,
			refresher: refresher,
			diag:      o.diag,
			enabled:   caps.Has(CapClear),
		},
	}
}

// Start performs the session-start stats refresh.
func (c *Controller) Start(ctx context.Context) {
	c.Stats.Refresh(ctx)
}

// RefreshStats is the manual refresh gesture. It goes through the same
// refresher as the refresh after mutating actions.
func (c *Controller) RefreshStats(ctx context.Context) error {
	if !c.Caps.Has(CapRefresh) {
		return fmt.Errorf("refresh: %w", common.ErrCapabilityMissing)
	}
	c.refresher.Refresh(ctx)
	return nil
}

// TransferKind names a file the backend hands out.
type TransferKind int

// Transfer kinds.
const (
	TransferTemplate TransferKind = iota
	TransferTransactionTemplate
	TransferExport
)

func (k TransferKind) String() string {
	switch k {
	case TransferTransactionTemplate:
		return "transaction_template"
	case TransferExport:
		return "export"
	default:
		return "template"
	}
}

func (k TransferKind) capability() Capability {
	switch k {
	case TransferTransactionTemplate:
		return CapTransactionTemplate
	case TransferExport:
		return CapExport
	default:
		return CapTemplate
	}
}

// TransferJob downloads one file from the backend.
type TransferJob struct {
	backend      service.AdminBackend
	FileName     string
	TemplateType string
	Kind         TransferKind
}

// TransferOutcome is what a TransferJob returned.
type TransferOutcome struct {
	Err      error
	Download model.Download
}

// BeginTransfer prepares a download. templateType is only used for TransferTemplate.
func (c *Controller) BeginTransfer(kind TransferKind, templateType string) (*TransferJob, error) {
	if !c.Caps.Has(kind.capability()) {
		return nil, fmt.Errorf("%s: %w", kind, common.ErrCapabilityMissing)
	}

	job := &TransferJob{backend: c.backend, Kind: kind, TemplateType: templateType}
	switch kind {
	case TransferTemplate:
		if job.TemplateType == "" {
			job.TemplateType = model.DefaultTemplateType
		}
		job.FileName = model.TemplateFileName(job.TemplateType)
	case TransferTransactionTemplate:
		job.FileName = model.TransactionTemplateFileName
	case TransferExport:
		job.FileName = model.ExportFileName(c.now())
	}
	return job, nil
}

// Run performs the download. It does not touch console state.
func (j *TransferJob) Run(ctx context.Context) TransferOutcome {
	var (
		data []byte
		err  error
	)
	switch j.Kind {
	case TransferTemplate:
		data, err = j.backend.Template(ctx, j.TemplateType)
	case TransferTransactionTemplate:
		data, err = j.backend.TransactionTemplate(ctx)
	case TransferExport:
		data, err = j.backend.Export(ctx)
	}
	if err != nil {
		return TransferOutcome{Err: err}
	}
	return TransferOutcome{Download: model.Download{FileName: j.FileName, Data: data}}
}

// FinishTransfer saves a successful download into dir and reports the result.
// It returns the path written.
func (c *Controller) FinishTransfer(job *TransferJob, outcome TransferOutcome, dir string) (string, error) {
	done, failed, transport := transferMessages(job.Kind)

	if outcome.Err != nil {
		if appErr, ok := common.AsApplication(outcome.Err); ok {
			c.Status.Error(appErr.MessageOr(failed))
			return "", outcome.Err
		}
		c.diag.Fault("Controller", job.Kind.String(), outcome.Err)
		c.Status.Error(transport)
		return "", outcome.Err
	}

	path, err := saveDownload(dir, outcome.Download)
	if err != nil {
		c.diag.Fault("Controller", job.Kind.String(), err)
		c.Status.Error(msgSaveFailed)
		return "", err
	}

	slog.Info("Saved download", "kind", job.Kind.String(), "path", path, "bytes", len(outcome.Download.Data))
	c.Status.Success(done)
	return path, nil
}

// Transfer runs BeginTransfer, Run and FinishTransfer in sequence.
func (c *Controller) Transfer(ctx context.Context, kind TransferKind, templateType, dir string) (string, error) {
	job, err := c.BeginTransfer(kind, templateType)
	if err != nil {
		return "", err
	}
	return c.FinishTransfer(job, job.Run(ctx), dir)
}

// DownloadTemplate saves the cost master template of the given type.
func (c *Controller) DownloadTemplate(ctx context.Context, templateType, dir string) (string, error) {
	return c.Transfer(ctx, TransferTemplate, templateType, dir)
}

// DownloadTransactionTemplate saves the transaction template.
func (c *Controller) DownloadTransactionTemplate(ctx context.Context, dir string) (string, error) {
	return c.Transfer(ctx, TransferTransactionTemplate, "", dir)
}

// Export saves the cost master export.
func (c *Controller) Export(ctx context.Context, dir string) (string, error) {
	return c.Transfer(ctx, TransferExport, "", dir)
}

func transferMessages(kind TransferKind) (done, failed, transport string) {
	switch kind {
	case TransferTransactionTemplate:
		return msgTxTemplateDone, msgTxTemplateFailed, msgTxTemplateFailed
	case TransferExport:
		return msgExportDone, msgExportFailed, msgExportTransport
	default:
		return msgTemplateDone, msgTemplateFailed, msgTemplateFailed
	}
}

func saveDownload(dir string, download model.Download) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, download.FileName)
	if err := os.WriteFile(path, download.Data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// BeginViewData checks that the data view is available.
func (c *Controller) BeginViewData() error {
	if !c.Caps.Has(CapViewData) {
		return fmt.Errorf("view data: %w", common.ErrCapabilityMissing)
	}
	return nil
}

// FetchData loads the data snapshot. It does not touch console state.
func (c *Controller) FetchData(ctx context.Context) (model.Snapshot, error) {
	return c.backend.Data(ctx)
}

// FinishViewData reports a failed snapshot load. A successful load shows no status.
func (c *Controller) FinishViewData(snapshot model.Snapshot, err error) (model.Snapshot, error) {
	if err == nil {
		return snapshot, nil
	}
	if appErr, ok := common.AsApplication(err); ok {
		c.Status.Error(appErr.MessageOr(msgDataFailed))
		return model.Snapshot{}, err
	}
	c.diag.Fault("Controller", "view_data", err)
	c.Status.Error(msgDataTransport)
	return model.Snapshot{}, err
}

// ViewData loads the data snapshot in one step.
func (c *Controller) ViewData(ctx context.Context) (model.Snapshot, error) {
	if err := c.BeginViewData(); err != nil {
		return model.Snapshot{}, err
	}
	snapshot, err := c.FetchData(ctx)
	return c.FinishViewData(snapshot, err)
}
