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
)

func openClear(t *testing.T, h *harness) *ClearWorkflow {
	t.Helper()
	w := h.ctrl.Clear
	require.NoError(t, w.Open())
	return w
}

func TestClear_OpenDefaults(t *testing.T) {
	h := newHarness(t)
	w := openClear(t, h)

	assert.Equal(t, ClearCollecting, w.State())
	assert.True(t, w.Active())
	assert.Equal(t, model.ClearRequest{ClearCostMaster: true}, w.Request())
}

func TestClear_WrongPhraseNeverSends(t *testing.T) {
	for _, phrase := range []string{"", "くりあ", "クリア ", "clear", "クリアー"} {
		t.Run(phrase, func(t *testing.T) {
			h := newHarness(t)
			w := openClear(t, h)
			require.NoError(t, w.SetPhrase(phrase))

			err := w.Submit(context.Background())
			require.ErrorIs(t, err, common.ErrEmptyConfirmation)
			assert.Equal(t, ClearCollecting, w.State())
			assert.Equal(t, msgClearConfirmNeeded, h.status(t).Text)
			h.backend.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
		})
	}
}

func TestClear_NoTargetNeverSends(t *testing.T) {
	h := newHarness(t)
	w := openClear(t, h)
	require.NoError(t, w.SetTargets(false, false))
	require.NoError(t, w.SetPhrase(model.ConfirmationPhrase))

	err := w.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrNoTargetSelected)
	assert.True(t, common.IsValidation(err))
	assert.Equal(t, ClearCollecting, w.State())
	assert.Equal(t, msgClearNoTarget, h.status(t).Text)
	h.backend.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestClear_PhraseCheckedBeforeTargets(t *testing.T) {
	h := newHarness(t)
	w := openClear(t, h)
	require.NoError(t, w.SetTargets(false, false))

	err := w.Submit(context.Background())
	require.ErrorIs(t, err, common.ErrEmptyConfirmation)
}

func TestClear_SendsExactPayloadOnce(t *testing.T) {
	h := newHarness(t)
	w := openClear(t, h)
	require.NoError(t, w.SetPhrase(model.ConfirmationPhrase))

	want := model.ClearRequest{ConfirmationPhrase: model.ConfirmationPhrase, ClearCostMaster: true, ClearRecipes: false}
	h.backend.On("Clear", mock.Anything, want).Return(nil).Once()

	require.NoError(t, w.Submit(context.Background()))

	h.backend.AssertNumberOfCalls(t, "Clear", 1)
	assert.Equal(t, ClearDone, w.State())
	assert.False(t, w.Active())
	assert.Equal(t, 1, h.refresher.calls)

	msg := h.status(t)
	assert.Equal(t, model.SeveritySuccess, msg.Severity)
	assert.Equal(t, "データをクリアしました: 原価マスター", msg.Text)
}

func TestClear_BothTargetsEnumerated(t *testing.T) {
	h := newHarness(t)
	w := openClear(t, h)
	require.NoError(t, w.ToggleRecipes())
	require.NoError(t, w.SetPhrase(model.ConfirmationPhrase))
	h.backend.On("Clear", mock.Anything, mock.MatchedBy(func(req model.ClearRequest) bool {
		return req.ClearCostMaster && req.ClearRecipes
	})).Return(nil).Once()

	require.NoError(t, w.Submit(context.Background()))
	assert.Equal(t, "データをクリアしました: 原価マスター、レシピ", h.status(t).Text)
}

func TestClear_FailureReturnsToCollecting(t *testing.T) {
	tests := []struct {
		err       error
		name      string
		wantText  string
		wantFault bool
	}{
		{
			name:     "application error",
			err:      &common.ApplicationError{Operation: "clear", StatusCode: 500, Message: "DBエラー"},
			wantText: "DBエラー",
		},
		{
			name:     "application error without message",
			err:      &common.ApplicationError{Operation: "clear", StatusCode: 500},
			wantText: msgClearFailed,
		},
		{
			name:      "transport error",
			err:       &common.TransportError{Operation: "clear", Err: errors.New("reset by peer")},
			wantText:  msgClearTransport,
			wantFault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			w := openClear(t, h)
			require.NoError(t, w.SetTargets(false, true))
			require.NoError(t, w.SetPhrase(model.ConfirmationPhrase))
			h.backend.On("Clear", mock.Anything, mock.Anything).Return(tt.err).Once()

			err := w.Submit(context.Background())
			require.ErrorIs(t, err, tt.err)

			assert.Equal(t, ClearCollecting, w.State())
			assert.Equal(t, model.ClearRequest{ConfirmationPhrase: model.ConfirmationPhrase, ClearRecipes: true}, w.Request())
			assert.Equal(t, tt.wantText, h.status(t).Text)
			assert.Zero(t, h.refresher.calls)
			assert.Equal(t, tt.wantFault, len(h.diag.faults) == 1)
		})
	}
}

func TestClear_CommitWhileSubmittingIgnored(t *testing.T) {
	h := newHarness(t)
	w := openClear(t, h)
	require.NoError(t, w.SetPhrase(model.ConfirmationPhrase))
	h.backend.On("Clear", mock.Anything, mock.Anything).Return(nil).Once()

	job, err := w.Commit()
	require.NoError(t, err)
	assert.Equal(t, ClearSubmitting, w.State())

	again, err := w.Commit()
	require.ErrorIs(t, err, common.ErrClearInFlight)
	assert.Nil(t, again)
	require.ErrorIs(t, w.Cancel(), common.ErrClearInFlight)
	require.ErrorIs(t, w.Open(), common.ErrClearInFlight)

	require.NoError(t, w.Finish(context.Background(), job, job.Run(context.Background())))
	h.backend.AssertNumberOfCalls(t, "Clear", 1)
}

func TestClear_CancelHasNoSideEffects(t *testing.T) {
	h := newHarness(t)
	w := openClear(t, h)
	require.NoError(t, w.ToggleRecipes())
	require.NoError(t, w.SetPhrase("クリ"))

	require.NoError(t, w.Cancel())
	assert.Equal(t, ClearIdle, w.State())
	assert.Equal(t, model.ClearRequest{}, w.Request())
	_, ok := h.ctrl.Status.Current()
	assert.False(t, ok)

	require.NoError(t, w.Open())
	assert.Equal(t, model.ClearRequest{ClearCostMaster: true}, w.Request())
}

func TestClear_EditsRequireOpenWorkflow(t *testing.T) {
	h := newHarness(t)
	w := h.ctrl.Clear

	require.ErrorIs(t, w.SetPhrase(model.ConfirmationPhrase), common.ErrClearNotOpen)
	require.ErrorIs(t, w.SetTargets(true, true), common.ErrClearNotOpen)
	_, err := w.Commit()
	require.ErrorIs(t, err, common.ErrClearNotOpen)
}

func TestClear_MissingCapability(t *testing.T) {
	h := newHarness(t, without(CapClear))
	require.ErrorIs(t, h.ctrl.Clear.Open(), common.ErrCapabilityMissing)
}

func TestClearState_String(t *testing.T) {
	assert.Equal(t, "idle", ClearIdle.String())
	assert.Equal(t, "collecting", ClearCollecting.String())
	assert.Equal(t, "validating", ClearValidating.String())
	assert.Equal(t, "submitting", ClearSubmitting.String())
	assert.Equal(t, "done", ClearDone.String())
}
