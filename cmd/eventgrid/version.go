package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/eventgrid"
	"github.com/aretw0/eventgrid/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of eventgrid",
	Run: func(cmd *cobra.Command, args []string) {
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			fmt.Fprintf(cmd.OutOrStdout(), "eventgrid version %s\n", strings.TrimSpace(eventgrid.Version))
			return
		}
		tui.PrintBanner(cmd.OutOrStdout(), strings.TrimSpace(eventgrid.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("plain", false, "Print only the version line")
}
