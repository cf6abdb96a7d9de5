package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/costctl/internal/console"
)

func templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Download a CSV template",
		Long: `Template saves a CSV template from the admin backend.

By default it downloads the cost master template of the configured type.
With --transaction it downloads the transaction template instead.`,
		Args: cobra.NoArgs,
		RunE: runTemplate,
	}

	cmd.Flags().String("type", "", "cost master template type (default from config, \"basic\")")
	cmd.Flags().Bool("transaction", false, "download the transaction template")
	cmd.Flags().StringP("output", "o", "", "directory to save into (default from config)")
	return cmd
}

func runTemplate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConsoleConfig()
	if err != nil {
		return err
	}
	client, err := newAdminClient(cfg)
	if err != nil {
		return err
	}
	ctrl := newController(client, cmd.OutOrStdout(), nil)

	kind := console.TransferTemplate
	if transaction, _ := cmd.Flags().GetBool("transaction"); transaction {
		kind = console.TransferTransactionTemplate
	}
	templateType, _ := cmd.Flags().GetString("type")
	if templateType == "" {
		templateType = cfg.TemplateType
	}

	_, err = ctrl.Transfer(cmd.Context(), kind, templateType, outputDir(cmd, cfg))
	return err
}
