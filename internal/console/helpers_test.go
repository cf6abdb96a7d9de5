package console

import (
	"context"
	"testing"

	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/testutil"
)

type fakeToggle struct {
	history []bool
}

func (f *fakeToggle) SetEnabled(enabled bool) {
	f.history = append(f.history, enabled)
}

func (f *fakeToggle) enabled() bool {
	return len(f.history) > 0 && f.history[len(f.history)-1]
}

type fakeIndicator struct {
	visible bool
	shown   int
}

func (f *fakeIndicator) SetVisible(visible bool) {
	f.visible = visible
	if visible {
		f.shown++
	}
}

type fakeStatsView struct {
	shown []model.Stats
}

func (f *fakeStatsView) ShowStats(stats model.Stats) {
	f.shown = append(f.shown, stats)
}

type fault struct {
	err       error
	component string
	operation string
}

type recordingDiagnostics struct {
	faults []fault
}

func (r *recordingDiagnostics) Fault(component, operation string, err error) {
	r.faults = append(r.faults, fault{component: component, operation: operation, err: err})
}

type countingRefresher struct {
	calls int
}

func (c *countingRefresher) Refresh(context.Context) {
	c.calls++
}

type harness struct {
	backend   *testutil.MockBackend
	clock     *testutil.FakeClock
	trigger   *fakeToggle
	progress  *fakeIndicator
	view      *fakeStatsView
	diag      *recordingDiagnostics
	refresher *countingRefresher
	ctrl      *Controller
}

type harnessOption func(Controls)

func withMode(mode model.UploadMode) harnessOption {
	return func(c Controls) {
		c[CapModeSelect] = FixedMode(mode)
	}
}

func without(capabilities ...Capability) harnessOption {
	return func(c Controls) {
		for _, capability := range capabilities {
			delete(c, capability)
		}
	}
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	h := &harness{
		backend:   testutil.NewMockBackend(t),
		clock:     testutil.NewFakeClock(),
		trigger:   &fakeToggle{},
		progress:  &fakeIndicator{},
		view:      &fakeStatsView{},
		diag:      &recordingDiagnostics{},
		refresher: &countingRefresher{},
	}

	controls := AllPresent()
	controls[CapUploadTrigger] = h.trigger
	controls[CapProgress] = h.progress
	controls[CapStatsView] = h.view
	delete(controls, CapModeSelect)
	for _, opt := range opts {
		opt(controls)
	}

	h.ctrl = NewController(h.backend, controls,
		WithClock(h.clock.Now),
		WithDiagnostics(h.diag),
		WithRefresher(h.refresher))
	return h
}

func (h *harness) status(t *testing.T) model.StatusMessage {
	t.Helper()
	msg, ok := h.ctrl.Status.Current()
	if !ok {
		t.Fatal("expected a visible status message")
	}
	return msg
}
