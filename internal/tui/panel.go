package tui

import (
	"context"

	"github.com/Veraticus/costctl/internal/console"
	"github.com/Veraticus/costctl/internal/model"
)

// panel is the console's view of the controls the core drives.
// It is shared by pointer across Model copies and only touched on the update loop.
type panel struct {
	stats          *model.Stats
	statuses       []model.StatusMessage
	refreshes      int
	mode           model.UploadMode
	modeExplicit   bool
	triggerEnabled bool
	busy           bool
}

// SetEnabled implements console.Toggle.
func (p *panel) SetEnabled(enabled bool) {
	p.triggerEnabled = enabled
}

// SetVisible implements console.Indicator.
func (p *panel) SetVisible(visible bool) {
	p.busy = visible
}

// SelectedMode implements console.ModeSource.
func (p *panel) SelectedMode() (model.UploadMode, bool) {
	return p.mode, p.modeExplicit
}

// ShowStats implements console.StatsView.
func (p *panel) ShowStats(stats model.Stats) {
	p.stats = &stats
}

// Refresh implements console.Refresher by deferring the fetch to a command.
func (p *panel) Refresh(context.Context) {
	p.refreshes++
}

func (p *panel) toggleMode() {
	if p.mode == model.ModeTransaction {
		p.mode = model.ModeCostMaster
	} else {
		p.mode = model.ModeTransaction
	}
	p.modeExplicit = true
}

func (p *panel) controls() console.Controls {
	controls := console.AllPresent()
	controls[console.CapUploadTrigger] = p
	controls[console.CapProgress] = p
	controls[console.CapModeSelect] = p
	controls[console.CapStatsView] = p
	return controls
}
