package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/qrsmith/internal/server"
)

// serveCommand creates the serve command for running the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the QR encoding HTTP server",
		Long: `Run an HTTP server exposing the encoder.

Endpoints:
  GET /healthz        health check
  GET /v1/qr.svg      vector image
  GET /v1/qr.png      raster image (attachment)
  GET /v1/qr.json     symbol metadata

Query parameters: text, mode, ecc, min, max, mask, boost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(cmd.Context(), cfg, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}
