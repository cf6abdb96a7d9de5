package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/costctl/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show ingredient and recipe counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConsoleConfig()
			if err != nil {
				return err
			}
			client, err := newAdminClient(cfg)
			if err != nil {
				return err
			}
			ctrl := newController(client, cmd.OutOrStdout(), nil)

			// The console keeps stale stats on failure; a one-shot command reports it.
			stats, err := ctrl.Stats.Fetch(cmd.Context())
			if err != nil {
				ctrl.Stats.Fail(err)
				return fmt.Errorf("failed to fetch stats: %w", err)
			}
			ctrl.Stats.Apply(stats)
			return cli.RenderStats(cmd.OutOrStdout(), stats)
		},
	}
}
