package main

import (
	"github.com/aretw0/eventgrid/internal/cli"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input-path>",
	Short: "Summarize the tiers an event log would produce",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return cli.UsageErrorf("expected 1 argument (input-path), got %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, debug := commonFlags(cmd)
		mode, _ := cmd.Flags().GetString("mode")
		markdown, _ := cmd.Flags().GetBool("markdown")

		return cli.RunInspect(cmd.Context(), cli.InspectOptions{
			Input:      args[0],
			ModeFlag:   mode,
			ConfigPath: configPath,
			Overrides:  overrides(cmd),
			Debug:      debug,
			Markdown:   markdown,
			Stdout:     cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	addProfileFlags(inspectCmd)
	inspectCmd.Flags().String("mode", "", "Bound mode (0 add, 1 subtract); defaults to the profile")
	inspectCmd.Flags().Bool("markdown", false, "Print raw markdown even on a terminal")
}
