package main

import (
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored cost master data as CSV",
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
			_, err = ctrl.Export(cmd.Context(), outputDir(cmd, cfg))
			return err
		},
	}

	cmd.Flags().StringP("output", "o", "", "directory to save into (default from config)")
	return cmd
}
