package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/console"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/tui/themes"
)

// State represents the current screen of the console.
type State int

const (
	StateMain State = iota
	StatePicking
	StateClearing
	StateData
)

// Model holds the console state.
type Model struct {
	theme    themes.Theme
	ctrl     *console.Controller
	panel    *panel
	snapshot *model.Snapshot
	lastSave string
	config   Config
	keymap   KeyMap
	help     help.Model
	picker   filepicker.Model
	phrase   textinput.Model
	spinner  spinner.Model
	state    State
	width    int
	height   int
	quitting bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	p := &panel{mode: cfg.UploadMode, modeExplicit: cfg.ModeExplicit}
	ctrl := console.NewController(cfg.Backend, p.controls(), console.WithRefresher(p))
	ctrl.Status.OnShow(func(msg model.StatusMessage) {
		p.statuses = append(p.statuses, msg)
	})

	picker := filepicker.New()
	picker.AllowedTypes = []string{model.AllowedExtension}
	picker.CurrentDirectory = cfg.StartDir
	picker.AutoHeight = false
	picker.SetHeight(max(cfg.Height-8, 5))

	phrase := textinput.New()
	phrase.Placeholder = model.ConfirmationPhrase
	phrase.CharLimit = 16
	phrase.Width = 20

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = s.Style.Foreground(cfg.Theme.Primary)

	h := help.New()
	h.ShowAll = false

	return Model{
		theme:   cfg.Theme,
		ctrl:    ctrl,
		panel:   p,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		help:    h,
		picker:  picker,
		phrase:  phrase,
		spinner: s,
		state:   StateMain,
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// Init loads the stats snapshot and starts the picker.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		fetchStats(m.config.Context, m.config.Backend),
		m.picker.Init(),
		m.spinner.Tick,
	}
	if m.config.Preselect != "" {
		path := m.config.Preselect
		cmds = append(cmds, func() tea.Msg { return FileDroppedMsg{Path: path} })
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.picker.SetHeight(max(msg.Height-8, 5))

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) && (m.state != StateClearing || msg.String() == "ctrl+c") {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		cmds = append(cmds, cmd)
		return m, m.drain(cmds)

	case FileDroppedMsg:
		m.selectPath(msg.Path)

	case statsLoadedMsg:
		if msg.err != nil {
			m.ctrl.Stats.Fail(msg.err)
		} else {
			m.ctrl.Stats.Apply(msg.stats)
		}

	case uploadFinishedMsg:
		if _, err := m.ctrl.Uploads.Finish(m.config.Context, msg.job, msg.outcome); err != nil {
			slog.Debug("Upload finished with error", "error", err)
		}

	case clearFinishedMsg:
		if err := m.ctrl.Clear.Finish(m.config.Context, msg.job, msg.err); err == nil {
			m.closeClear()
		}

	case transferFinishedMsg:
		path, err := m.ctrl.FinishTransfer(msg.job, msg.outcome, m.config.OutputDir)
		if err == nil {
			m.lastSave = path
		}

	case dataLoadedMsg:
		snapshot, err := m.ctrl.FinishViewData(msg.snapshot, msg.err)
		if err == nil {
			m.snapshot = &snapshot
			m.state = StateData
		}

	case statusExpiredMsg:
		m.ctrl.Status.Expire(msg.seq)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Directory listings arrive asynchronously, also while the picker is hidden.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	cmds = append(cmds, cmd)

	return m, m.drain(cmds)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
	case StatePicking:
		return m.handlePickerKey(msg)
	case StateClearing:
		return m.handleClearKey(msg)
	case StateData:
		if key.Matches(msg, m.keymap.Back) || key.Matches(msg, m.keymap.ViewData) {
			m.state = StateMain
		}
		return m, nil
	}

	ctx := m.config.Context
	switch {
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Browse):
		if m.ctrl.Caps.Has(console.CapFileInput) {
			m.state = StatePicking
			return m, m.picker.Init()
		}

	case key.Matches(msg, m.keymap.ToggleMode):
		m.panel.toggleMode()

	case key.Matches(msg, m.keymap.Upload):
		job, err := m.ctrl.Uploads.Begin()
		if err != nil {
			// In-flight and missing-control gestures are no-ops.
			return m, nil
		}
		return m, runUpload(ctx, job)

	case key.Matches(msg, m.keymap.Refresh):
		_ = m.ctrl.RefreshStats(ctx)

	case key.Matches(msg, m.keymap.Template):
		return m, m.beginTransfer(console.TransferTemplate)

	case key.Matches(msg, m.keymap.TransactionTemplate):
		return m, m.beginTransfer(console.TransferTransactionTemplate)

	case key.Matches(msg, m.keymap.Export):
		return m, m.beginTransfer(console.TransferExport)

	case key.Matches(msg, m.keymap.ViewData):
		if err := m.ctrl.BeginViewData(); err == nil {
			return m, fetchData(ctx, m.ctrl)
		}

	case key.Matches(msg, m.keymap.Clear):
		if err := m.ctrl.Clear.Open(); err == nil {
			m.state = StateClearing
			m.phrase.Reset()
			return m, m.phrase.Focus()
		}
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Back) {
		m.state = StateMain
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.selectPath(path)
		m.state = StateMain
		return m, cmd
	}
	// Files the picker greys out still go through intake so the operator
	// sees why they were refused.
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.selectPath(path)
		m.state = StateMain
		return m, cmd
	}
	return m, cmd
}

func (m Model) handleClearKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	w := m.ctrl.Clear
	switch {
	case key.Matches(msg, m.keymap.Back):
		if err := w.Cancel(); err == nil {
			m.closeClear()
		}
		return m, nil

	case key.Matches(msg, m.keymap.ToggleCostMaster):
		_ = w.ToggleCostMaster()
		return m, nil

	case key.Matches(msg, m.keymap.ToggleRecipes):
		_ = w.ToggleRecipes()
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		job, err := w.Commit()
		if err != nil {
			return m, nil
		}
		return m, runClear(m.config.Context, job)
	}

	if w.State() == console.ClearSubmitting {
		return m, nil
	}
	var cmd tea.Cmd
	m.phrase, cmd = m.phrase.Update(msg)
	if err := w.SetPhrase(m.phrase.Value()); err != nil && !errors.Is(err, common.ErrClearNotOpen) {
		slog.Warn("Failed to record confirmation phrase", "error", err)
	}
	return m, cmd
}

func (m *Model) closeClear() {
	m.phrase.Reset()
	m.phrase.Blur()
	m.state = StateMain
}

func (m *Model) selectPath(path string) {
	if _, err := m.ctrl.Intake.SelectPath(path); err != nil {
		slog.Debug("File rejected", "path", path, "error", err)
	}
}

func (m Model) beginTransfer(kind console.TransferKind) tea.Cmd {
	job, err := m.ctrl.BeginTransfer(kind, m.config.TemplateType)
	if err != nil {
		return nil
	}
	return runTransfer(m.config.Context, job)
}

// drain turns deferred controller side effects into commands: one stats fetch
// per requested refresh and one expiry tick per shown status.
func (m Model) drain(cmds []tea.Cmd) tea.Cmd {
	for ; m.panel.refreshes > 0; m.panel.refreshes-- {
		cmds = append(cmds, fetchStats(m.config.Context, m.config.Backend))
	}
	for _, msg := range m.panel.statuses {
		cmds = append(cmds, expireStatus(msg.Seq, msg.ExpiresAfter))
	}
	m.panel.statuses = m.panel.statuses[:0]
	return tea.Batch(cmds...)
}
