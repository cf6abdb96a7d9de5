package tui

import (
	"context"

	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
	"github.com/Veraticus/costctl/internal/tui/themes"
)

// Config holds console configuration.
type Config struct {
	Context      context.Context
	Backend      service.AdminBackend
	Theme        themes.Theme
	StartDir     string
	OutputDir    string
	TemplateType string
	Preselect    string
	Width        int
	Height       int
	UploadMode   model.UploadMode
	ModeExplicit bool
	ShowHelp     bool
}

// Option is a functional option for configuring the console.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Context:      context.Background(),
		Theme:        themes.Default,
		StartDir:     ".",
		OutputDir:    ".",
		TemplateType: model.DefaultTemplateType,
		Width:        80,
		Height:       24,
		ShowHelp:     true,
	}
}

// WithBackend sets the admin backend.
func WithBackend(backend service.AdminBackend) Option {
	return func(c *Config) {
		c.Backend = backend
	}
}

// WithContext sets the context passed to every backend request.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithDirectories sets where the file picker starts and where downloads are saved.
func WithDirectories(start, output string) Option {
	return func(c *Config) {
		c.StartDir = start
		c.OutputDir = output
	}
}

// WithTemplateType sets the cost master template requested by the template key.
func WithTemplateType(templateType string) Option {
	return func(c *Config) {
		c.TemplateType = templateType
	}
}

// WithUploadMode preselects the ingestion mode.
func WithUploadMode(mode model.UploadMode) Option {
	return func(c *Config) {
		c.UploadMode = mode
		c.ModeExplicit = true
	}
}

// WithPreselectedFile selects a file on startup.
func WithPreselectedFile(path string) Option {
	return func(c *Config) {
		c.Preselect = path
	}
}
