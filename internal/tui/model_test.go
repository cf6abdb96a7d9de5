package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/costctl/internal/console"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
	"github.com/Veraticus/costctl/internal/testutil"
)

// collect runs cmd and any batched commands, dropping those that do not
// finish promptly such as expiry ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(200 * time.Millisecond):
		return nil
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

type consoleHarness struct {
	backend *testutil.MockBackend
	dir     string
	model   Model
}

func newConsole(t *testing.T, opts ...Option) *consoleHarness {
	t.Helper()
	backend := testutil.NewMockBackend(t)
	dir := t.TempDir()

	base := []Option{
		WithBackend(backend),
		WithContext(context.Background()),
		WithDirectories(dir, filepath.Join(dir, "out")),
		WithSize(100, 40),
	}
	m, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return &consoleHarness{backend: backend, dir: dir, model: m}
}

// send applies msg and returns the messages its command produced.
func (h *consoleHarness) send(msg tea.Msg) []tea.Msg {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return collect(cmd)
}

// settle applies msg and then every console message produced in response.
func (h *consoleHarness) settle(msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, out := range h.send(current) {
			switch out.(type) {
			case statsLoadedMsg, uploadFinishedMsg, clearFinishedMsg, transferFinishedMsg, dataLoadedMsg, FileDroppedMsg:
				queue = append(queue, out)
			}
		}
	}
}

func (h *consoleHarness) writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (h *consoleHarness) status(t *testing.T) model.StatusMessage {
	t.Helper()
	msg, ok := h.model.ctrl.Status.Current()
	require.True(t, ok, "expected a visible status")
	return msg
}

func TestNew_RequiresBackend(t *testing.T) {
	_, err := New()
	require.Error(t, err)
}

func TestConsole_InitLoadsStats(t *testing.T) {
	h := newConsole(t)
	h.backend.On("Stats", mock.Anything).Return(model.Stats{IngredientCount: 12, RecipeCount: 3}, nil).Once()

	for _, msg := range collect(h.model.Init()) {
		if _, ok := msg.(statsLoadedMsg); ok {
			h.settle(msg)
		}
	}

	require.NotNil(t, h.model.panel.stats)
	assert.Equal(t, 12, h.model.panel.stats.IngredientCount)
	assert.Contains(t, h.model.View(), "材料数: 12")
}

func TestConsole_UploadFlow(t *testing.T) {
	h := newConsole(t)
	path := h.writeCSV(t, "master.csv", "ingredient_name,capacity,unit,unit_price\n玉ねぎ,1,kg,300\n")

	h.settle(FileDroppedMsg{Path: path})
	assert.True(t, h.model.panel.triggerEnabled)
	assert.Contains(t, h.model.View(), "master.csv")

	h.backend.On("UploadCostMaster", mock.Anything, mock.MatchedBy(func(f model.SelectedFile) bool {
		return f.Name == "master.csv"
	})).Return(42, nil).Once()
	h.backend.On("Stats", mock.Anything).Return(model.Stats{IngredientCount: 42}, nil).Once()

	msgs := h.send(keyPress("u"))
	require.Len(t, msgs, 1)
	assert.True(t, h.model.panel.busy)
	assert.False(t, h.model.panel.triggerEnabled)

	// A second gesture while pending does nothing.
	assert.Empty(t, h.send(keyPress("u")))

	h.settle(msgs[0])
	h.backend.AssertNumberOfCalls(t, "UploadCostMaster", 1)
	h.backend.AssertNumberOfCalls(t, "Stats", 1)

	msg := h.status(t)
	assert.Equal(t, model.SeveritySuccess, msg.Severity)
	assert.Contains(t, msg.Text, "42")
	assert.False(t, h.model.panel.busy)
	_, selected := h.model.ctrl.Intake.Current()
	assert.False(t, selected)
	assert.Equal(t, 42, h.model.panel.stats.IngredientCount)
}

func TestConsole_UploadTransactionsAfterModeSwitch(t *testing.T) {
	h := newConsole(t)
	path := h.writeCSV(t, "tx.csv", "date,item\n")
	h.settle(FileDroppedMsg{Path: path})

	h.settle(keyPress("m"))
	assert.Contains(t, h.model.View(), "取引データ")

	h.backend.On("UploadTransactions", mock.Anything, mock.Anything).
		Return(service.TransactionCounts{Processed: 10, Extracted: 8, Saved: 8}, nil).Once()
	h.backend.On("Stats", mock.Anything).Return(model.Stats{}, nil).Once()

	h.settle(keyPress("u"))

	text := h.status(t).Text
	assert.Contains(t, text, "10")
	assert.Contains(t, text, "8")
}

func TestConsole_RejectsNonCSV(t *testing.T) {
	h := newConsole(t)
	path := h.writeCSV(t, "notes.txt", "hello")

	h.settle(FileDroppedMsg{Path: path})

	msg := h.status(t)
	assert.Equal(t, model.SeverityError, msg.Severity)
	assert.False(t, h.model.panel.triggerEnabled)
}

func TestConsole_ClearFlow(t *testing.T) {
	h := newConsole(t)

	h.settle(keyPress("c"))
	require.Equal(t, StateClearing, h.model.state)
	assert.Contains(t, h.model.View(), "[x] 原価マスター")

	// Wrong phrase: nothing is sent and the modal stays open.
	h.settle(keyPress("クリ"))
	h.settle(keyPress("enter"))
	assert.Equal(t, StateClearing, h.model.state)
	assert.Equal(t, console.ClearCollecting, h.model.ctrl.Clear.State())
	h.backend.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)

	want := model.ClearRequest{ConfirmationPhrase: model.ConfirmationPhrase, ClearCostMaster: true, ClearRecipes: true}
	h.backend.On("Clear", mock.Anything, want).Return(nil).Once()
	h.backend.On("Stats", mock.Anything).Return(model.Stats{}, nil).Once()

	h.settle(keyPress("ア"))
	h.settle(keyPress("ctrl+r"))
	h.settle(keyPress("enter"))

	assert.Equal(t, StateMain, h.model.state)
	assert.Equal(t, "データをクリアしました: 原価マスター、レシピ", h.status(t).Text)
	h.backend.AssertNumberOfCalls(t, "Clear", 1)
}

func TestConsole_ClearCancel(t *testing.T) {
	h := newConsole(t)

	h.settle(keyPress("c"))
	h.settle(keyPress("q"))
	assert.Equal(t, StateClearing, h.model.state, "q is typed into the phrase field")

	h.settle(keyPress("esc"))
	assert.Equal(t, StateMain, h.model.state)
	assert.Equal(t, console.ClearIdle, h.model.ctrl.Clear.State())
}

func TestConsole_StatusExpiry(t *testing.T) {
	h := newConsole(t)
	first := h.model.ctrl.Status.Info("first")
	second := h.model.ctrl.Status.Info("second")

	h.send(statusExpiredMsg{seq: first.Seq})
	assert.Contains(t, h.model.View(), "second")

	h.send(statusExpiredMsg{seq: second.Seq})
	assert.NotContains(t, h.model.View(), "second")
}

func TestConsole_ViewDataAndExport(t *testing.T) {
	h := newConsole(t)
	h.backend.On("Data", mock.Anything).Return(model.Snapshot{
		CostMaster: []model.CostMasterItem{{IngredientName: "玉ねぎ", Capacity: 1, Unit: "kg", UnitPrice: 300}},
	}, nil).Once()
	h.backend.On("Export", mock.Anything).Return([]byte("a,b\n"), nil).Once()

	h.settle(keyPress("v"))
	require.Equal(t, StateData, h.model.state)
	assert.Contains(t, h.model.View(), "玉ねぎ")

	h.settle(keyPress("esc"))
	assert.Equal(t, StateMain, h.model.state)

	h.settle(keyPress("e"))
	require.NotEmpty(t, h.model.lastSave)
	data, err := os.ReadFile(h.model.lastSave)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestConsole_TemplateUsesConfiguredType(t *testing.T) {
	h := newConsole(t, WithTemplateType("detailed"))
	h.backend.On("Template", mock.Anything, "detailed").Return([]byte("x"), nil).Once()
	h.backend.On("TransactionTemplate", mock.Anything).Return([]byte("y"), nil).Once()

	h.settle(keyPress("t"))
	assert.Equal(t, "cost_master_template_detailed.csv", filepath.Base(h.model.lastSave))

	h.settle(keyPress("T"))
	assert.Equal(t, "transaction_template.csv", filepath.Base(h.model.lastSave))
}

func TestConsole_Quit(t *testing.T) {
	h := newConsole(t)
	next, cmd := h.model.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}
