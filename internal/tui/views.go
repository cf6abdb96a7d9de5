package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/costctl/internal/cli"
	"github.com/Veraticus/costctl/internal/console"
	"github.com/Veraticus/costctl/internal/model"
)

// View renders the console.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.state {
	case StatePicking:
		body = m.renderPicker()
	case StateClearing:
		body = m.renderClear()
	case StateData:
		body = m.renderData()
	default:
		body = lipgloss.JoinVertical(lipgloss.Left, m.renderUpload(), m.renderStats())
	}

	sections := []string{m.theme.Title.Render("原価マスター管理"), body, m.renderStatus()}
	if m.config.ShowHelp {
		if m.state == StateClearing {
			sections = append(sections, m.help.View(clearKeys{m.keymap}))
		} else {
			sections = append(sections, m.help.View(m.keymap))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderUpload() string {
	mode := "原価マスター"
	if current, _ := m.panel.SelectedMode(); current == model.ModeTransaction {
		mode = "取引データ"
	}

	lines := []string{
		m.theme.Bold.Render("アップロード"),
		fmt.Sprintf("モード: %s", m.theme.Key.Render(mode)),
	}

	if file, ok := m.ctrl.Intake.Current(); ok {
		lines = append(lines, fmt.Sprintf("ファイル: %s (%s)", file.Name, console.FormatFileSize(file.Size)))
	} else {
		lines = append(lines, m.theme.Subtitle.Render("ファイル: 未選択"))
	}

	trigger := m.theme.Disabled.Render("[u] アップロード")
	if m.panel.triggerEnabled {
		trigger = m.theme.Key.Render("[u] アップロード")
	}
	if m.panel.busy {
		trigger = m.spinner.View() + " " + m.theme.Subtitle.Render("処理中...")
	}
	lines = append(lines, trigger)

	if m.lastSave != "" {
		lines = append(lines, m.theme.Subtitle.Render("保存先: "+m.lastSave))
	}
	return m.theme.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStats() string {
	stats := model.Stats{}
	if m.panel.stats != nil {
		stats = *m.panel.stats
	}
	lines := []string{
		m.theme.Bold.Render("データベース統計"),
		fmt.Sprintf("材料数: %d", stats.IngredientCount),
		fmt.Sprintf("レシピ数: %d", stats.RecipeCount),
		fmt.Sprintf("最終更新: %s", stats.LastUpdateOrDash()),
	}
	return m.theme.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPicker() string {
	header := m.theme.Bold.Render("CSVファイルを選択") + "\n" +
		m.theme.Subtitle.Render(m.picker.CurrentDirectory)
	return m.theme.Panel.Render(header + "\n\n" + m.picker.View())
}

func (m Model) renderClear() string {
	req := m.ctrl.Clear.Request()
	checkbox := func(label string, checked bool) string {
		if checked {
			return m.theme.Checked.Render("[x] " + label)
		}
		return m.theme.Unchecked.Render("[ ] " + label)
	}

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(m.theme.Danger).Render("データのクリア"),
		"この操作は元に戻せません。",
		"",
		checkbox("原価マスター", req.ClearCostMaster),
		checkbox("レシピ", req.ClearRecipes),
		"",
		fmt.Sprintf("確認のため「%s」と入力してください:", model.ConfirmationPhrase),
		m.phrase.View(),
	}
	if m.ctrl.Clear.State() == console.ClearSubmitting {
		lines = append(lines, "", m.spinner.View()+" クリア中...")
	}
	return m.theme.Modal.Render(strings.Join(lines, "\n"))
}

func (m Model) renderData() string {
	if m.snapshot == nil {
		return ""
	}
	var b strings.Builder
	if err := cli.RenderSnapshot(&b, *m.snapshot); err != nil {
		return err.Error()
	}
	return m.theme.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStatus() string {
	msg, ok := m.ctrl.Status.Current()
	if !ok {
		return ""
	}
	switch msg.Severity {
	case model.SeveritySuccess:
		return m.theme.StatusSuccess.Render(msg.Text)
	case model.SeverityError:
		return m.theme.StatusError.Render(msg.Text)
	default:
		return m.theme.StatusInfo.Render(msg.Text)
	}
}
