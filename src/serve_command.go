package src

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ironsmile/following/src/following"
	"github.com/ironsmile/following/src/library"
	"github.com/ironsmile/following/src/scaler"
	"github.com/ironsmile/following/src/webserver"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var (
		listen  string
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serve starts the HTTP API. While it runs the configured libraries are
watched and the albums in them are kept up to date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if listen == "" {
				listen = cfg.Listen
			}

			lib, err := ctx.openLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			client, err := ctx.newCatalog()
			if err != nil {
				return err
			}

			sclr := scaler.New(cmd.Context())
			defer sclr.Cancel()

			srv := webserver.NewServer(
				listen,
				lib,
				following.NewReconciler(lib, client, log),
				client,
				sclr,
				log,
			)

			g, gctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				return srv.Serve(gctx)
			})

			if !noWatch && len(cfg.Libraries) > 0 {
				watcher := library.NewWatcher(lib, library.NewScanner(ctx.fsys, log), log)
				g.Go(func() error {
					if err := watcher.Watch(gctx, cfg.Libraries...); err != nil {
						log.Warn().Err(err).Msg("libraries will not be watched for changes")
					}
					return nil
				})
			}

			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "",
		"Address to listen on, overrides the configuration")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"Do not watch the libraries for changes")

	return cmd
}
