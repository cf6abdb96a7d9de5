// Package tui provides the interactive admin console built on bubbletea.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// New creates the console model.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Backend == nil {
		return Model{}, fmt.Errorf("console requires a backend")
	}
	return newModel(cfg), nil
}

// Run starts the console and blocks until the operator quits.
func Run(opts ...Option) error {
	m, err := New(opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.config.Context))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}
