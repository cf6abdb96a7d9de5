package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/costctl/internal/cli"
)

func dataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "data",
		Short: "Show stored cost master rows and recipes",
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

			snapshot, err := ctrl.ViewData(cmd.Context())
			if err != nil {
				return err
			}
			return cli.RenderSnapshot(cmd.OutOrStdout(), snapshot)
		},
	}
}
