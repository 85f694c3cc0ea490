package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphbin/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion service",
		Long: `Serve conversions, generation and inspection over HTTP.

Routes:
  GET  /healthz
  GET  /version
  POST /v1/convert/{format}?emit=binedge
  POST /v1/generate/{model}?nodes=&attach=&p=&seed=&emit=
  POST /v1/inspect/{binedge|binadj}

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	srv := server.New(runner, server.Config{
		Addr:             addr,
		MaxBodyBytes:     c.Config.Serve.MaxBodyBytes,
		MaxGenerateNodes: c.Config.Serve.MaxGenerateNodes,
	})
	if noCache {
		printWarning("Caching disabled, every request is recomputed")
	}
	printInfo("Serving on %s", StyleHighlight.Render(addr))
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	printSuccess("Server stopped")
	return nil
}
