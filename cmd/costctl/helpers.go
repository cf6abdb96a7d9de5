package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/costctl/internal/admin"
	"github.com/Veraticus/costctl/internal/cli"
	"github.com/Veraticus/costctl/internal/config"
	"github.com/Veraticus/costctl/internal/console"
	"github.com/Veraticus/costctl/internal/model"
	"github.com/Veraticus/costctl/internal/service"
)

// loadConsoleConfig reads the shared settings from the global viper instance.
func loadConsoleConfig() (*config.Console, error) {
	cfg, err := config.LoadConsole(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newAdminClient creates the HTTP client for the configured backend.
func newAdminClient(cfg *config.Console, opts ...admin.Option) (*admin.Client, error) {
	client, err := admin.NewClient(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin client: %w", err)
	}
	slog.Debug("Using admin backend", "url", client.BaseURL())
	return client, nil
}

// modeChoice is the upload mode picked by flag or configuration.
type modeChoice struct {
	mode     model.UploadMode
	explicit bool
}

// SelectedMode implements console.ModeSource.
func (m modeChoice) SelectedMode() (model.UploadMode, bool) {
	return m.mode, m.explicit
}

// resolveMode prefers the --mode flag over the configured mode.
func resolveMode(cmd *cobra.Command, cfg *config.Console) (modeChoice, error) {
	if flag := cmd.Flags().Lookup("mode"); flag != nil && flag.Changed {
		mode, err := model.ParseUploadMode(flag.Value.String())
		if err != nil {
			return modeChoice{}, err
		}
		return modeChoice{mode: mode, explicit: true}, nil
	}
	return modeChoice{mode: cfg.UploadMode, explicit: cfg.ModeExplicit}, nil
}

// newController wires a console controller for one command and echoes its
// status messages to out.
func newController(backend service.AdminBackend, out io.Writer, mode console.ModeSource) *console.Controller {
	controls := console.AllPresent()
	if mode != nil {
		controls[console.CapModeSelect] = mode
	}
	ctrl := console.NewController(backend, controls)
	ctrl.Status.OnShow(cli.NewStatusPrinter(out).Print)
	return ctrl
}

// printStats renders the stats the controller last applied, if any.
func printStats(w io.Writer, ctrl *console.Controller) error {
	stats, ok := ctrl.Stats.Latest()
	if !ok {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return cli.RenderStats(w, stats)
}

// outputDir prefers the --output flag over the configured directory.
func outputDir(cmd *cobra.Command, cfg *config.Console) string {
	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		return config.ExpandPath(dir)
	}
	return cfg.OutputDir
}
