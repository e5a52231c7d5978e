package main

import (
	"github.com/aretw0/eventgrid/internal/cli"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input-path> <output-path> <mode-flag>",
	Short: "Convert an event log into a TextGrid file",
	Long: `Converts the SSI event log at input-path into a TextGrid written to output-path.

mode-flag selects how interval bounds are computed:
  0  [from, from+dur]  (add)
  1  [from-dur, from]  (subtract)

Inputs ending in .gz, .zst or .lz4 are decompressed on the fly.`,
	Example: `  eventgrid convert session.events session.TextGrid 0
  eventgrid convert session.events.zst out.TextGrid 1 --format short --fill-gaps`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 3 {
			return cli.UsageErrorf("expected 3 arguments (input-path output-path mode-flag), got %d", len(args))
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, debug := commonFlags(cmd)
		metricsFile, _ := cmd.Flags().GetString("metrics-file")
		quiet, _ := cmd.Flags().GetBool("quiet")

		return cli.RunConvert(cmd.Context(), cli.ConvertOptions{
			Input:       args[0],
			Output:      args[1],
			ModeFlag:    args[2],
			ConfigPath:  configPath,
			Overrides:   overrides(cmd),
			MetricsFile: metricsFile,
			Debug:       debug,
			Quiet:       quiet,
			Stdout:      cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addProfileFlags(convertCmd)
	convertCmd.Flags().String("metrics-file", "", "Write Prometheus metrics for this run to a textfile")
	convertCmd.Flags().BoolP("quiet", "q", false, "Do not print a summary line")
}
