package model

import (
	"fmt"
	"time"
)

// Stats is the summary panel snapshot. It is always replaced wholesale.
type Stats struct {
	LastUpdate      *string `json:"last_update"`
	IngredientCount int     `json:"ingredients"`
	RecipeCount     int     `json:"recipes"`
}

// LastUpdateOrDash returns the last update time or "-" when unknown.
func (s Stats) LastUpdateOrDash() string {
	if s.LastUpdate == nil || *s.LastUpdate == "" {
		return "-"
	}
	return *s.LastUpdate
}

// CostMasterItem is one row of the cost master table.
type CostMasterItem struct {
	IngredientName string  `json:"ingredient_name"`
	Unit           string  `json:"unit"`
	Capacity       float64 `json:"capacity"`
	UnitPrice      float64 `json:"unit_price"`
}

// Recipe is one stored recipe.
type Recipe struct {
	DishName  string `json:"dish_name"`
	CreatedAt string `json:"created_at"`
	Servings  int    `json:"servings"`
}

// CreatedDate returns the recipe's creation date as YYYY-MM-DD when parseable.
func (r Recipe) CreatedDate() string {
	if r.CreatedAt == "" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, r.CreatedAt); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return r.CreatedAt
}

// Snapshot is the full stored data returned by the data view.
type Snapshot struct {
	CostMaster []CostMasterItem `json:"cost_master"`
	Recipes    []Recipe         `json:"recipes"`
}

// Download is a named binary payload (template or export).
type Download struct {
	FileName string
	Data     []byte
}

// DefaultTemplateType is the template requested when none is named.
const DefaultTemplateType = "basic"

// TemplateFileName returns the local name for a cost master template.
func TemplateFileName(templateType string) string {
	return fmt.Sprintf("cost_master_template_%s.csv", templateType)
}

// TransactionTemplateFileName is the local name for the transaction template.
const TransactionTemplateFileName = "transaction_template.csv"

// ExportFileName returns the dated local name for a data export.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("cost_master_export_%s.csv", now.Format("2006-01-02"))
}
