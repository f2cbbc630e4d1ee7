package main

import (
	"captcha-verifier/internal/infrastructure/server"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve the game's static files for local verification runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := opts.cfg.ServeRoot
			if len(args) == 1 {
				root = args[0]
			}

			log, err := newLogger(opts, "serve")
			if err != nil {
				return err
			}
			defer log.Close()

			srv, err := server.NewStaticServer(opts.cfg.ServeAddr, root, log)
			if err != nil {
				return err
			}
			return srv.Serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&opts.cfg.ServeAddr, "addr", opts.cfg.ServeAddr, "listen address")
	return cmd
}
