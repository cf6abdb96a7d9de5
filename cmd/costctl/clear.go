package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/costctl/internal/cli"
	"github.com/Veraticus/costctl/internal/common"
)

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear stored cost master data and recipes",
		Long: `Clear permanently deletes stored data on the admin backend.

This is a destructive operation that cannot be undone. Choose what to delete
with --cost-master and --recipes, then type the confirmation phrase when asked.
Scripts can pass the phrase with --confirm.`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}

	cmd.Flags().Bool("cost-master", true, "clear the cost master")
	cmd.Flags().Bool("recipes", false, "clear recipes")
	cmd.Flags().String("confirm", "", "confirmation phrase, skips the prompt")
	return cmd
}

func runClear(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConsoleConfig()
	if err != nil {
		return err
	}
	client, err := newAdminClient(cfg)
	if err != nil {
		return err
	}
	ctrl := newController(client, out, nil)

	costMaster, _ := cmd.Flags().GetBool("cost-master")
	recipes, _ := cmd.Flags().GetBool("recipes")

	if err := ctrl.Clear.Open(); err != nil {
		return err
	}
	if err := ctrl.Clear.SetTargets(costMaster, recipes); err != nil {
		return err
	}

	phrase, _ := cmd.Flags().GetString("confirm")
	if !cmd.Flags().Changed("confirm") {
		prompt := cli.NewPhrasePrompt(cmd.InOrStdin(), out)
		phrase, err = prompt.Ask(cmd.Context(), ctrl.Clear.Request())
		if errors.Is(err, cli.ErrInputCancelled) {
			_ = ctrl.Clear.Cancel()
			if _, werr := fmt.Fprintln(out, cli.FormatInfo("クリアを中止しました。")); werr != nil {
				return fmt.Errorf("failed to write output: %w", werr)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
	}
	if err := ctrl.Clear.SetPhrase(phrase); err != nil {
		return err
	}

	if err := ctrl.Clear.Submit(cmd.Context()); err != nil {
		return common.NewUserError("clear failed", err)
	}
	return printStats(out, ctrl)
}
