package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/eventgrid/internal/cli"
	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eventgrid",
	Short: "eventgrid converts SSI event logs into Praat TextGrid files",
	Long: `eventgrid reads the XML event logs written by the Social Signal Interpretation
framework and builds one interval tier per event sender, rendered as a Praat TextGrid.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if cmd, err := rootCmd.ExecuteC(); err != nil {
		os.Exit(report(cmd, err))
	}
}

// report prints err, followed by the usage of cmd when the invocation itself
// was wrong, and returns the exit code for err.
func report(cmd *cobra.Command, err error) int {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "Error: %v\n", err)
	var usage *domain.UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(w, "\n%s", cmd.UsageString())
	}
	return cli.ExitCode(err)
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Profile file (default: eventgrid.yaml in the working directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.UsageErrorf("%v", err)
	})
}

// overrides collects the profile flags shared by convert, inspect and serve.
// Only flags the user actually set take precedence over the profile.
func overrides(cmd *cobra.Command) cli.Overrides {
	var o cli.Overrides
	flags := cmd.Flags()
	if flags.Changed("format") {
		v, _ := flags.GetString("format")
		o.Format = &v
	}
	if flags.Changed("fill-gaps") {
		v, _ := flags.GetBool("fill-gaps")
		o.FillGaps = &v
	}
	if flags.Changed("strict-order") {
		v, _ := flags.GetBool("strict-order")
		o.StrictOrder = &v
	}
	o.Tiers, _ = flags.GetStringArray("tier")
	o.Senders, _ = flags.GetStringSlice("sender")
	return o
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Output format: long or short")
	cmd.Flags().Bool("fill-gaps", false, "Pad every tier with empty intervals up to the document extent")
	cmd.Flags().Bool("strict-order", false, "Reject intervals that start before the previous one in their tier")
	cmd.Flags().StringArray("tier", nil, "Rename a sender's tier (sender=name, repeatable)")
	cmd.Flags().StringSlice("sender", nil, "Only convert events from these senders")
}

func commonFlags(cmd *cobra.Command) (configPath string, debug bool) {
	configPath, _ = cmd.Flags().GetString("config")
	debug, _ = cmd.Flags().GetBool("debug")
	return configPath, debug
}
