package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgrid/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API until
// the process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		cfg   server.Config
		cache cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout API",
		Long: `Run the HTTP layout API.

Endpoints:
  GET  /healthz     liveness and version
  POST /v1/layout   lay out one document (?format=dot, ?pinned=true)
  POST /v1/batch    lay out {"documents":[{"name","source"}]} in parallel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			runner, err := c.newRunner(ctx, cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, cfg)
			printInfo("Serving on %s", srv.Addr())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&cfg.MaxBatchDocuments, "max-batch", server.DefaultMaxBatchDocuments, "maximum documents per batch request")
	cmd.Flags().IntVarP(&cfg.BatchLimit, "jobs", "j", 0, "documents laid out in parallel per batch (0 = number of CPUs)")
	cache.register(cmd)

	return cmd
}
