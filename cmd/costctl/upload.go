package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/costctl/internal/admin"
	"github.com/Veraticus/costctl/internal/cli"
	"github.com/Veraticus/costctl/internal/common"
)

func uploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file.csv>",
		Short: "Upload a cost master or transaction CSV",
		Long: `Upload sends a CSV file to the admin backend.

In cost_master mode the rows replace the ingredient price list. In transaction
mode the backend extracts purchases from the file and stores what it finds.
Files must end in .csv and be at most 10MB.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().String("mode", "", "upload mode (cost_master, transaction)")
	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConsoleConfig()
	if err != nil {
		return err
	}
	mode, err := resolveMode(cmd, cfg)
	if err != nil {
		return err
	}

	var opts []admin.Option
	if cli.IsTerminal(out) {
		opts = append(opts, admin.WithUploadProgress(cli.UploadProgress(out, cli.UploadIcon+" アップロード中")))
	}
	client, err := newAdminClient(cfg, opts...)
	if err != nil {
		return err
	}

	ctrl := newController(client, out, mode)

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "アップロード")
	ctx, cancel := handler.HandleInterrupts(cmd.Context())
	defer cancel()

	if _, err := ctrl.Intake.SelectPath(args[0]); err != nil {
		return err
	}
	if _, err := ctrl.Uploads.Upload(ctx); err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return common.NewUserError("upload failed", err)
	}

	return printStats(out, ctrl)
}
