package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/morphgraph/pkg/api"
	"github.com/matzehuels/morphgraph/pkg/observability"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Long: `Serve starts the HTTP API (POST /v1/pipeline, POST /v1/inspect) with
Prometheus metrics on /metrics. It shuts down gracefully on SIGINT or
SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg().Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			printInfo(cmd.ErrOrStderr(), "Serving on %s (cache: %s)", StyleHighlight.Render(cfg.Addr), c.cfg().Cache.Backend)
			srv := api.New(runner, c.Logger, api.Config{
				Addr:         cfg.Addr,
				MaxBodyBytes: cfg.MaxBodyBytes,
			})
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
