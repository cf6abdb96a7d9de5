package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/costctl/internal/tui"
	"github.com/Veraticus/costctl/internal/tui/themes"
)

func consoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console [file.csv]",
		Short: "Open the interactive admin console",
		Long: `Console opens the full-screen admin console.

Pick a CSV file, switch between cost master and transaction mode, upload, and
manage stored data from one screen. Logs go to a file so they do not disturb
the display. A file given as argument is selected on startup.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runConsole,
	}

	cmd.Flags().String("dir", ".", "directory the file picker starts in")
	return cmd
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := loadConsoleConfig()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o750); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if closeErr := logFile.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", closeErr)
		}
	}()
	if err := setupLogging(logFile); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	client, err := newAdminClient(cfg)
	if err != nil {
		return err
	}

	startDir, _ := cmd.Flags().GetString("dir")
	opts := []tui.Option{
		tui.WithBackend(client),
		tui.WithContext(cmd.Context()),
		tui.WithDirectories(startDir, cfg.OutputDir),
		tui.WithTemplateType(cfg.TemplateType),
		tui.WithTheme(themes.GetTheme(cfg.Theme)),
	}
	if cfg.ModeExplicit {
		opts = append(opts, tui.WithUploadMode(cfg.UploadMode))
	}
	if len(args) == 1 {
		opts = append(opts, tui.WithPreselectedFile(args[0]))
	}

	return tui.Run(opts...)
}
