package console

import (
	"log/slog"
	"sort"

	"github.com/Veraticus/costctl/internal/model"
)

// Capability names a UI control the console may or may not have.
type Capability string

// Known capabilities. FileInput and UploadTrigger are critical; the rest are optional.
const (
	CapFileInput           Capability = "file_input"
	CapUploadTrigger       Capability = "upload_trigger"
	CapProgress            Capability = "progress"
	CapModeSelect          Capability = "mode_select"
	CapStatsView           Capability = "stats_view"
	CapTemplate            Capability = "template_download"
	CapTransactionTemplate Capability = "transaction_template_download"
	CapRefresh             Capability = "refresh"
	CapViewData            Capability = "view_data"
	CapExport              Capability = "export"
	CapClear               Capability = "clear"
)

var criticalCapabilities = []Capability{CapFileInput, CapUploadTrigger}

var optionalCapabilities = []Capability{
	CapProgress,
	CapModeSelect,
	CapStatsView,
	CapTemplate,
	CapTransactionTemplate,
	CapRefresh,
	CapViewData,
	CapExport,
	CapClear,
}

// Toggle is a control that can be enabled or disabled, such as the upload button.
type Toggle interface {
	SetEnabled(enabled bool)
}

// Indicator is a control that can be shown or hidden, such as a progress spinner.
type Indicator interface {
	SetVisible(visible bool)
}

// ModeSource reports the operator's current ingestion mode choice.
// ok is false when no explicit choice exists.
type ModeSource interface {
	SelectedMode() (mode model.UploadMode, ok bool)
}

// StatsView displays the stats snapshot.
type StatsView interface {
	ShowStats(stats model.Stats)
}

// Present marks a control that exists but carries no state, like a plain button.
type Present struct{}

// FixedMode is a ModeSource that always reports the same explicit choice.
type FixedMode model.UploadMode

// SelectedMode implements ModeSource.
func (f FixedMode) SelectedMode() (model.UploadMode, bool) {
	return model.UploadMode(f), true
}

// Controls maps each capability to its control. A missing or nil entry means the
// control is absent.
type Controls map[Capability]any

// AllPresent returns Controls with every capability present and no stateful controls.
func AllPresent() Controls {
	controls := Controls{}
	for _, c := range criticalCapabilities {
		controls[c] = Present{}
	}
	for _, c := range optionalCapabilities {
		controls[c] = Present{}
	}
	return controls
}

func (c Controls) trigger() Toggle {
	t, _ := c[CapUploadTrigger].(Toggle)
	return t
}

func (c Controls) progress() Indicator {
	i, _ := c[CapProgress].(Indicator)
	return i
}

func (c Controls) modeSource() ModeSource {
	m, _ := c[CapModeSelect].(ModeSource)
	return m
}

func (c Controls) statsView() StatsView {
	v, _ := c[CapStatsView].(StatsView)
	return v
}

// Capabilities records which controls were found at wiring time.
type Capabilities map[Capability]bool

// Has reports whether the capability is available.
func (c Capabilities) Has(capability Capability) bool {
	return c[capability]
}

// Missing lists the absent capabilities in a stable order.
func (c Capabilities) Missing() []Capability {
	var missing []Capability
	for _, capability := range append(append([]Capability{}, criticalCapabilities...), optionalCapabilities...) {
		if !c[capability] {
			missing = append(missing, capability)
		}
	}
	return missing
}

// DetectCapabilities checks the controls once and logs what is missing.
// A missing control disables only the feature that depends on it.
func DetectCapabilities(controls Controls) Capabilities {
	caps := make(Capabilities, len(criticalCapabilities)+len(optionalCapabilities))

	var critical, optional []string
	for _, capability := range criticalCapabilities {
		caps[capability] = controls[capability] != nil
		if !caps[capability] {
			critical = append(critical, string(capability))
		}
	}
	for _, capability := range optionalCapabilities {
		caps[capability] = controls[capability] != nil
		if !caps[capability] {
			optional = append(optional, string(capability))
		}
	}

	if len(critical) > 0 {
		sort.Strings(critical)
		slog.Error("Critical console controls missing, some features are limited", "missing", critical)
	}
	if len(optional) > 0 {
		sort.Strings(optional)
		slog.Warn("Optional console controls missing", "missing", optional)
	}
	return caps
}

// uploadTrigger tracks whether the upload control may fire.
// It is enabled only while a file is selected and no upload is in flight.
type uploadTrigger struct {
	control  Toggle
	armed    bool
	inFlight bool
}

func (t *uploadTrigger) Enabled() bool {
	return t.armed && !t.inFlight
}

func (t *uploadTrigger) arm(armed bool) {
	t.armed = armed
	t.sync()
}

func (t *uploadTrigger) setInFlight(inFlight bool) {
	t.inFlight = inFlight
	t.sync()
}

func (t *uploadTrigger) sync() {
	if t.control != nil {
		t.control.SetEnabled(t.Enabled())
	}
}
