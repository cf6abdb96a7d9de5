package model

// ConfirmationPhrase must be typed verbatim to authorize a destructive clear.
const ConfirmationPhrase = "クリア"

// ClearRequest selects which stored data to wipe.
// The confirmation phrase is checked locally and never sent to the backend.
type ClearRequest struct {
	ConfirmationPhrase string `json:"-"`
	ClearCostMaster    bool   `json:"clear_cost_master"`
	ClearRecipes       bool   `json:"clear_recipes"`
}

// HasTarget reports whether at least one category is selected.
func (r ClearRequest) HasTarget() bool {
	return r.ClearCostMaster || r.ClearRecipes
}

// Confirmed reports whether the confirmation phrase matches exactly.
func (r ClearRequest) Confirmed() bool {
	return r.ConfirmationPhrase == ConfirmationPhrase
}

// Targets lists the display names of the selected categories.
func (r ClearRequest) Targets() []string {
	var targets []string
	if r.ClearCostMaster {
		targets = append(targets, "原価マスター")
	}
	if r.ClearRecipes {
		targets = append(targets, "レシピ")
	}
	return targets
}
