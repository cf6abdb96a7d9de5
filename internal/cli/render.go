package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/costctl/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

const noData = "データなし"

// StatusPrinter echoes console status messages to a writer as they are shown.
type StatusPrinter struct {
	writer io.Writer
}

// NewStatusPrinter creates a printer writing to w.
func NewStatusPrinter(w io.Writer) *StatusPrinter {
	return &StatusPrinter{writer: w}
}

// Print writes one status message. It matches the console OnShow listener signature.
func (p *StatusPrinter) Print(msg model.StatusMessage) {
	if _, err := fmt.Fprintln(p.writer, FormatStatus(msg)); err != nil {
		slog.Warn("Failed to write status", "error", err)
	}
}

// RenderStats writes the stats snapshot as a two-column table.
func RenderStats(w io.Writer, stats model.Stats) error {
	if _, err := fmt.Fprintln(w, FormatTitle(ChartIcon+" データベース統計")); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"材料数", strconv.Itoa(stats.IngredientCount)},
		{"レシピ数", strconv.Itoa(stats.RecipeCount)},
		{"最終更新", stats.LastUpdateOrDash()},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", headerStyle.Render(row[0]), row[1]); err != nil {
			return fmt.Errorf("failed to write stats row: %w", err)
		}
	}
	return tw.Flush()
}

// RenderSnapshot writes the cost master and recipe tables.
func RenderSnapshot(w io.Writer, snapshot model.Snapshot) error {
	if err := renderCostMaster(w, snapshot.CostMaster); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}
	return renderRecipes(w, snapshot.Recipes)
}

func renderCostMaster(w io.Writer, items []model.CostMasterItem) error {
	if _, err := fmt.Fprintln(w, FormatTitle(fmt.Sprintf("原価マスター (%d件)", len(items)))); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render(noData))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("材料名"),
		headerStyle.Render("容量"),
		headerStyle.Render("単位"),
		headerStyle.Render("単価")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 12),
		strings.Repeat("─", 6),
		strings.Repeat("─", 4),
		strings.Repeat("─", 8)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t¥%s\n",
			orDash(item.IngredientName),
			formatCapacity(item.Capacity),
			orDash(item.Unit),
			strconv.FormatFloat(item.UnitPrice, 'f', -1, 64)); err != nil {
			return fmt.Errorf("failed to write cost master row: %w", err)
		}
	}
	return tw.Flush()
}

func renderRecipes(w io.Writer, recipes []model.Recipe) error {
	if _, err := fmt.Fprintln(w, FormatTitle(fmt.Sprintf("レシピ (%d件)", len(recipes)))); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	if len(recipes) == 0 {
		_, err := fmt.Fprintln(w, SubtleStyle.Render(noData))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
		headerStyle.Render("料理名"),
		headerStyle.Render("人数"),
		headerStyle.Render("作成日")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, recipe := range recipes {
		if _, err := fmt.Fprintf(tw, "%s\t%d人前\t%s\n",
			orDash(recipe.DishName),
			recipe.Servings,
			recipe.CreatedDate()); err != nil {
			return fmt.Errorf("failed to write recipe row: %w", err)
		}
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatCapacity(capacity float64) string {
	if capacity == 0 {
		return "-"
	}
	return strconv.FormatFloat(capacity, 'f', -1, 64)
}
