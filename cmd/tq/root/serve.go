package root

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskquest/internal/api"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for a desktop or browser front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, cleanup, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			srv := api.NewServer(api.Options{
				Addr:           env.cfg.Server.Addr,
				AllowedOrigins: env.cfg.Server.AllowedOrigins,
			}, env.svc, env.log.WithField("component", "api"))

			cmd.PrintErrf("serving %s on http://%s\n", env.dataPath, env.cfg.Server.Addr)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default 127.0.0.1:7420)")
	return cmd
}
