package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/internal/server"
	"github.com/matzehuels/treeviz/pkg/cache"
	"github.com/matzehuels/treeviz/pkg/pipeline"
)

// serveCommand creates the serve command, which exposes the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
		timeout time.Duration
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the visualization pipeline over HTTP",
		Long: `Serve the visualization pipeline over HTTP.

Endpoints accept a JSON body such as {"input": "[1,2,3]", "kind": "binary"}.
Fields left out take the defaults of the config file and the flags below.

  GET  /healthz
  GET  /v1/version
  POST /v1/visualize
  POST /v1/layout
  POST /v1/render/{format}
  POST /v1/nodes/{index}

Set cache.backend = "redis" in the config file (or TREEVIZ_REDIS_URL) to share
rendered artifacts between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("max-body") {
				maxBody = c.Config.Server.MaxBody
			}
			return c.runServe(cmd.Context(), opts, addr, maxBody, timeout, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", 1<<20, "maximum request body in bytes")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "per-request time limit")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	bindBuildFlags(cmd, &opts)
	bindLayoutFlags(cmd, &opts)
	cmd.Flags().StringVar(&opts.Style, "style", pipeline.DefaultStyle, "default visual style: simple, dark")
	registerRenderCompletion(cmd, false)

	return cmd
}

// runServe serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts pipeline.Options, addr string, maxBody int64, timeout time.Duration, noCache bool) error {
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	// Requests carry arbitrary options, so keep their entries apart from CLI runs.
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "serve:")

	srv := server.New(runner, c.Logger,
		server.WithDefaults(opts),
		server.WithMaxBody(maxBody),
		server.WithTimeout(timeout),
	)

	printInfo("Serving on %s", StyleLink.Render("http://"+addr))
	printDetail("Press Ctrl+C to stop")
	return srv.ListenAndServe(ctx, addr)
}
