package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/costctl/internal/common"
	"github.com/Veraticus/costctl/internal/model"
)

// Configuration keys.
const (
	KeyBaseURL      = "server.base_url"
	KeyUploadMode   = "upload.mode"
	KeyTemplateType = "template.type"
	KeyOutputDir    = "output.dir"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
	KeyLogFile      = "logging.file"
	KeyTheme        = "console.theme"
)

// DefaultBaseURL is where the admin backend listens in development.
const DefaultBaseURL = "http://localhost:5000"

// Console holds the settings shared by every costctl command.
type Console struct {
	BaseURL      string
	TemplateType string
	OutputDir    string
	LogFile      string
	Theme        string
	UploadMode   model.UploadMode
	// ModeExplicit is false when no upload mode was configured.
	ModeExplicit bool
}

// DefaultConsole returns the settings used when nothing is configured.
func DefaultConsole() Console {
	return Console{
		BaseURL:      DefaultBaseURL,
		TemplateType: model.DefaultTemplateType,
		OutputDir:    ".",
		LogFile:      DefaultLogFile(),
		Theme:        "default",
		UploadMode:   model.ModeCostMaster,
	}
}

// SetDefaults registers defaults with viper.
func SetDefaults(v *viper.Viper) {
	d := DefaultConsole()
	v.SetDefault(KeyBaseURL, d.BaseURL)
	v.SetDefault(KeyTemplateType, d.TemplateType)
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyTheme, d.Theme)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// LoadConsole reads the console settings from v.
// It follows this precedence:
// 1. Viper configuration (flags, config file or COSTCTL_ env vars)
// 2. The ADMIN_BASE_URL environment variable for the server address
// 3. Default values
func LoadConsole(v *viper.Viper) (*Console, error) {
	config := DefaultConsole()

	if s := strings.TrimSpace(v.GetString(KeyBaseURL)); s != "" {
		config.BaseURL = s
	}
	if config.BaseURL == DefaultBaseURL {
		if s := os.Getenv("ADMIN_BASE_URL"); s != "" {
			config.BaseURL = s
		}
	}
	if s := v.GetString(KeyTemplateType); s != "" {
		config.TemplateType = s
	}
	if s := v.GetString(KeyOutputDir); s != "" {
		config.OutputDir = ExpandPath(s)
	}
	if s := v.GetString(KeyLogFile); s != "" {
		config.LogFile = ExpandPath(s)
	}
	if s := v.GetString(KeyTheme); s != "" {
		config.Theme = s
	}
	if s := v.GetString(KeyUploadMode); s != "" {
		mode, err := model.ParseUploadMode(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyUploadMode, err)
		}
		config.UploadMode = mode
		config.ModeExplicit = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that the settings can be used.
func (c Console) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyBaseURL)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyBaseURL, c.BaseURL)
	}
	return nil
}

// DefaultLogFile is where the interactive console writes its log.
func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "costctl-console.log")
	}
	return filepath.Join(home, ".local", "state", "costctl", "console.log")
}
