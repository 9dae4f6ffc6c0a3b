package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/color"
	"github.com/tubescribe/tubescribe/icon"
	"github.com/tubescribe/tubescribe/key"
	"github.com/tubescribe/tubescribe/server"
	"github.com/tubescribe/tubescribe/style"
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Listen address")
	lo.Must0(viper.BindPFlag(key.ServeAddr, serveCmd.Flags().Lookup("addr")))
}

// serveCmd exposes the store over HTTP until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the retrieval API and live result events over HTTP",
	Long: `Serve the retrieval API and live result events over HTTP.

  POST   /api/batches               submit links ({"text": "...", "links": [...]})
  GET    /api/results               list results, newest first
  GET    /api/results/{id}          get one result
  GET    /api/results/{id}/export   download a completed result (?format=txt|doc)
  DELETE /api/results               clear all results
  GET    /ws                        stream store events
  GET    /healthz                   health check`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, err := newStore(ctx, cmd)
		handleErr(err)

		addr := viper.GetString(key.ServeAddr)
		fmt.Printf("%s listening on %s\n", style.Fg(color.Green)(icon.Get(icon.Check)), style.Fg(color.Purple)(addr))

		handleErr(server.NewApp(ctx, store).Serve(ctx, addr))
	},
}
