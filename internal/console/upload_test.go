package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
	"github.com/Veraticus/costctl/internal/testutil"
)

func selectValid(t *testing.T, h *harness) model.SelectedFile {
	t.Helper()
	file, err := h.ctrl.Intake.Select(testutil.ValidCSV())
	require.NoError(t, err)
	return file
}

func TestUpload_NoFileSelected(t *testing.T) {
	h := newHarness(t)

	_, err := h.ctrl.Uploads.Upload(context.Background())
	require.ErrorIs(t, err, common.ErrNoFileSelected)

	msg := h.status(t)
	assert.Equal(t, model.SeverityError, msg.Severity)
	assert.Equal(t, msgNoFileSelected, msg.Text)
	assert.Zero(t, h.progress.shown)
	assert.Zero(t, h.refresher.calls)
	h.backend.AssertNotCalled(t, "UploadCostMaster", mock.Anything, mock.Anything)
	h.backend.AssertNotCalled(t, "UploadTransactions", mock.Anything, mock.Anything)
}

func TestUpload_CostMasterSuccess(t *testing.T) {
	h := newHarness(t, withMode(model.ModeCostMaster))
	file := selectValid(t, h)
	h.backend.On("UploadCostMaster", mock.Anything, file).Return(42, nil).Once()

	result, err := h.ctrl.Uploads.Upload(context.Background())
	require.NoError(t, err)

	assert.True(t, result.OK())
	assert.Equal(t, model.ModeCostMaster, result.Mode)
	assert.Equal(t, 42, result.Count)

	msg := h.status(t)
	assert.Equal(t, model.SeveritySuccess, msg.Severity)
	assert.Contains(t, msg.Text, "42")

	_, ok := h.ctrl.Intake.Current()
	assert.False(t, ok, "selection is reset after success")
	assert.Equal(t, 1, h.refresher.calls)
	assert.False(t, h.progress.visible)
	assert.False(t, h.ctrl.Uploads.InFlight())
	assert.False(t, h.ctrl.Uploads.Enabled(), "nothing left to upload")
}

func TestUpload_TransactionSuccess(t *testing.T) {
	h := newHarness(t, withMode(model.ModeTransaction))
	file := selectValid(t, h)
	h.backend.On("UploadTransactions", mock.Anything, file).
		Return(service.TransactionCounts{Processed: 10, Extracted: 8, Saved: 8}, nil).Once()

	job, err := h.ctrl.Uploads.Begin()
	require.NoError(t, err)
	assert.Equal(t, msgParsingTx, h.status(t).Text)

	result, err := h.ctrl.Uploads.Finish(context.Background(), job, job.Run(context.Background()))
	require.NoError(t, err)

	assert.Equal(t, model.ModeTransaction, result.Mode)
	assert.Equal(t, 10, result.Processed)
	assert.Equal(t, 8, result.Extracted)
	assert.Equal(t, 8, result.Saved)

	msg := h.status(t)
	assert.Equal(t, model.SeveritySuccess, msg.Severity)
	assert.Contains(t, msg.Text, "処理: 10件")
	assert.Contains(t, msg.Text, "抽出: 8件")
	assert.Contains(t, msg.Text, "保存: 8件")
	assert.Equal(t, 1, h.refresher.calls)
}

func TestUpload_DefaultsToCostMasterWithoutModeSelection(t *testing.T) {
	h := newHarness(t)
	selectValid(t, h)
	h.backend.On("UploadCostMaster", mock.Anything, mock.Anything).Return(3, nil).Once()

	job, err := h.ctrl.Uploads.Begin()
	require.NoError(t, err)
	assert.Equal(t, model.ModeCostMaster, job.Mode)
	assert.Equal(t, msgUploading, h.status(t).Text)

	_, err = h.ctrl.Uploads.Finish(context.Background(), job, job.Run(context.Background()))
	require.NoError(t, err)
}

func TestUpload_Failures(t *testing.T) {
	transportErr := &common.TransportError{Operation: "upload", RequestID: "req-9", Err: errors.New("connection refused")}

	tests := []struct {
		err       error
		name      string
		wantText  string
		wantFault bool
	}{
		{
			name:     "application error with message",
			err:      &common.ApplicationError{Operation: "upload", StatusCode: 400, Message: "必須列がありません"},
			wantText: "必須列がありません",
		},
		{
			name:     "application error without message",
			err:      &common.ApplicationError{Operation: "upload", StatusCode: 500},
			wantText: msgUploadFailed,
		},
		{
			name:      "transport error",
			err:       transportErr,
			wantText:  msgUploadTransport,
			wantFault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			file := selectValid(t, h)
			h.backend.On("UploadCostMaster", mock.Anything, file).Return(0, tt.err).Once()

			result, err := h.ctrl.Uploads.Upload(context.Background())
			require.ErrorIs(t, err, tt.err)

			assert.False(t, result.OK())
			assert.Equal(t, tt.wantText, result.Failure)
			msg := h.status(t)
			assert.Equal(t, model.SeverityError, msg.Severity)
			assert.Equal(t, tt.wantText, msg.Text)

			if tt.wantFault {
				require.Len(t, h.diag.faults, 1)
				assert.Equal(t, "UploadDispatcher", h.diag.faults[0].component)
				assert.Equal(t, "upload", h.diag.faults[0].operation)
			} else {
				assert.Empty(t, h.diag.faults)
			}

			// Re-armed: the file is still selected and can be retried.
			_, ok := h.ctrl.Intake.Current()
			assert.True(t, ok)
			assert.True(t, h.ctrl.Uploads.Enabled())
			assert.True(t, h.trigger.enabled())
			assert.False(t, h.progress.visible)
			assert.Zero(t, h.refresher.calls)
		})
	}
}

func TestUpload_NotReentrant(t *testing.T) {
	h := newHarness(t)
	file := selectValid(t, h)
	h.backend.On("UploadCostMaster", mock.Anything, file).Return(7, nil).Once()

	job, err := h.ctrl.Uploads.Begin()
	require.NoError(t, err)
	pending := h.status(t)

	assert.True(t, h.ctrl.Uploads.InFlight())
	assert.False(t, h.ctrl.Uploads.Enabled())
	assert.False(t, h.trigger.enabled())
	assert.True(t, h.progress.visible)

	second, err := h.ctrl.Uploads.Begin()
	require.ErrorIs(t, err, common.ErrUploadInFlight)
	assert.Nil(t, second)
	assert.Equal(t, pending.Seq, h.status(t).Seq, "a no-op gesture shows nothing")
	assert.Equal(t, 1, h.progress.shown)

	_, err = h.ctrl.Uploads.Finish(context.Background(), job, job.Run(context.Background()))
	require.NoError(t, err)
	assert.False(t, h.ctrl.Uploads.InFlight())
}

func TestUpload_TriggerDisabledUntilFailureSettles(t *testing.T) {
	h := newHarness(t)
	file := selectValid(t, h)
	h.backend.On("UploadCostMaster", mock.Anything, file).
		Return(0, &common.TransportError{Operation: "upload", Err: errors.New("eof")}).Once()

	job, err := h.ctrl.Uploads.Begin()
	require.NoError(t, err)
	outcome := job.Run(context.Background())
	assert.False(t, h.trigger.enabled(), "still disabled while the outcome is pending")

	_, err = h.ctrl.Uploads.Finish(context.Background(), job, outcome)
	require.Error(t, err)
	assert.True(t, h.trigger.enabled())
	assert.Equal(t, []bool{false, true, false, true}, h.trigger.history)
}

func TestUpload_MissingTrigger(t *testing.T) {
	h := newHarness(t, without(CapUploadTrigger))
	selectValid(t, h)

	_, err := h.ctrl.Uploads.Upload(context.Background())
	require.ErrorIs(t, err, common.ErrCapabilityMissing)
}
