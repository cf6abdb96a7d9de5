package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Upload
	Browse     key.Binding
	Upload     key.Binding
	ToggleMode key.Binding

	// Data
	Refresh             key.Binding
	Template            key.Binding
	TransactionTemplate key.Binding
	ViewData            key.Binding
	Export              key.Binding
	Clear               key.Binding

	// Clear modal
	ToggleCostMaster key.Binding
	ToggleRecipes    key.Binding
	Confirm          key.Binding
	Back             key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Browse: key.NewBinding(
			key.WithKeys("o", "f"),
			key.WithHelp("o", "choose CSV"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "switch mode"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh stats"),
		),
		Template: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "template"),
		),
		TransactionTemplate: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "transaction template"),
		),
		ViewData: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view data"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear data"),
		),
		ToggleCostMaster: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "toggle cost master"),
		),
		ToggleRecipes: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "toggle recipes"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Browse, k.Upload, k.ToggleMode, k.Clear, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Browse, k.Upload, k.ToggleMode},
		{k.Refresh, k.ViewData, k.Export},
		{k.Template, k.TransactionTemplate, k.Clear},
		{k.Help, k.Quit},
	}
}

type clearKeys struct {
	KeyMap
}

// ShortHelp implements help.KeyMap for the clear modal.
func (k clearKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleCostMaster, k.ToggleRecipes, k.Confirm, k.Back}
}

// FullHelp implements help.KeyMap for the clear modal.
func (k clearKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
