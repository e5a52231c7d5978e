package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/eventgrid/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the conversion HTTP server",
	Long:  `Serves POST /v1/textgrid, converting request bodies into TextGrid documents. Results are cached in Redis when configured, in memory otherwise.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, debug := commonFlags(cmd)
		addr, _ := cmd.Flags().GetString("addr")
		redisAddr, _ := cmd.Flags().GetString("redis-addr")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.RunServe(ctx, cli.ServeOptions{
			ConfigPath: configPath,
			Overrides:  overrides(cmd),
			Addr:       addr,
			RedisAddr:  redisAddr,
			Debug:      debug,
			Ready: func(addr string) {
				cmd.Printf("eventgrid listening on %s\n", addr)
			},
		})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addProfileFlags(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (default from profile, :8080)")
	serveCmd.Flags().String("redis-addr", "", "Redis address for the document cache")
}
